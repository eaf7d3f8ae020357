// Package cgroup reads the memory limit imposed on the current process's
// cgroup, supporting both the v2 unified hierarchy and the v1 memory
// controller. A limit of 0 means "no limit detected".
package cgroup
