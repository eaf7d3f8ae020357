package cgroup

import (
	"bytes"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

const (
	cgroupRoot = "/sys/fs/cgroup"

	// v2 unified hierarchy: one file, "max" when unlimited.
	v2MemoryMax = cgroupRoot + "/memory.max"

	// v1 memory controller.
	v1MemoryLimit = cgroupRoot + "/memory/memory.limit_in_bytes"

	// noLimitThreshold filters the placeholder values the v1 controller
	// reports on unconstrained hosts (PAGE_COUNTER_MAX rounded to the
	// page size).
	noLimitThreshold = int64(1) << 62
)

// MemoryLimit returns the memory limit imposed on the current cgroup in
// bytes, or 0 when no limit is imposed or none can be determined.
func MemoryLimit() int64 {
	if isCgroup2() {
		return readLimit(v2MemoryMax)
	}
	return readLimit(v1MemoryLimit)
}

// isCgroup2 reports whether the unified cgroup v2 hierarchy is mounted.
func isCgroup2() bool {
	var st unix.Statfs_t
	if err := unix.Statfs(cgroupRoot, &st); err != nil {
		return false
	}
	return st.Type == unix.CGROUP2_SUPER_MAGIC
}

// readLimit parses a cgroup memory limit file. "max", unreadable or
// unparsable content, and no-limit placeholder values all yield 0.
func readLimit(path string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	s := string(bytes.TrimSpace(data))
	if s == "max" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 || n >= noLimitThreshold {
		return 0
	}
	return n
}
