//go:build !linux

package cgroup

// MemoryLimit always returns 0: cgroup limits are a Linux concept.
func MemoryLimit() int64 { return 0 }
