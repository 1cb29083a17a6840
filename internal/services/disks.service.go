package services

import (
	"os"
	"sort"
	"strings"

	"zhuangtai/internal/models"

	"github.com/shirou/gopsutil/v3/disk"
)

// FilterConfig is the table of heuristics that decides which mounted
// filesystems count as real disks. The defaults match common Linux noise
// (snap loop devices, tmpfs, bind mounts under system trees); platforms
// can override individual sets without touching the reporter logic.
type FilterConfig struct {
	ExcludedFilesystemTypes []string `yaml:"excluded_filesystem_types"`
	ExcludedPathPrefixes    []string `yaml:"excluded_path_prefixes"`
	VirtualDeviceMarkers    []string `yaml:"virtual_device_markers"`
	MinTotalBytes           uint64   `yaml:"min_total_bytes"`
}

// DefaultFilterConfig returns the stock filter table
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ExcludedFilesystemTypes: []string{"squashfs", "tmpfs", "iso9660"},
		ExcludedPathPrefixes:    []string{"/etc/", "/proc/", "/sys/", "/run/", "/dev/"},
		VirtualDeviceMarkers:    []string{"loop"},
		MinTotalBytes:           1 << 30, // 1 GiB
	}
}

// UsageFunc looks up usage counters for one mount point. A returned error
// means the mount is unreadable (permissions, vanished mid-enumeration)
// and it is silently dropped from the report.
type UsageFunc func(mountpoint string) (*models.DiskUsage, error)

// DiskReporter filters a raw mount list down to the set of real disks
// worth reporting. It holds no state between calls; every report is
// computed fresh from the mounts it is handed.
type DiskReporter struct {
	cfg        FilterConfig
	pathExists func(path string) bool
}

// NewDiskReporter creates a reporter with the given filter table
func NewDiskReporter(cfg FilterConfig) *DiskReporter {
	return &DiskReporter{
		cfg: cfg,
		pathExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// excluded reports whether a mount is filtered out before any usage lookup
func (r *DiskReporter) excluded(m models.DiskMount) bool {
	for _, marker := range r.cfg.VirtualDeviceMarkers {
		if strings.Contains(m.Device, marker) {
			return true
		}
	}
	for _, fstype := range r.cfg.ExcludedFilesystemTypes {
		if m.Fstype == fstype {
			return true
		}
	}
	if !r.pathExists(m.Mountpoint) {
		return true
	}
	for _, prefix := range r.cfg.ExcludedPathPrefixes {
		if strings.HasPrefix(m.Mountpoint, prefix) {
			return true
		}
	}
	return false
}

// dedupKey approximates "same physical volume". Two distinct volumes with
// identical total and used byte counts collide; no stronger identity is
// available across platforms, so the coarser key is accepted.
type dedupKey struct {
	total uint64
	used  uint64
}

// SelectReportableDisks reduces the raw mount list to an ordered,
// deduplicated list of disks. Mounts are processed in enumeration order;
// when two mounts report identical (total, used) counters the one with
// the shorter mount point path wins, since bind-mount aliases sit deeper
// in the tree than their canonical mount. The result is sorted by mount
// point ascending.
func (r *DiskReporter) SelectReportableDisks(mounts []models.DiskMount, usageOf UsageFunc) []models.ReportedDisk {
	reported := []models.ReportedDisk{}
	seen := make(map[dedupKey]int) // dedup key -> index into reported

	for _, m := range mounts {
		if r.excluded(m) {
			continue
		}

		usage, err := usageOf(m.Mountpoint)
		if err != nil {
			// Unreadable or vanished mount, not an error for the report
			continue
		}

		if usage.TotalBytes < r.cfg.MinTotalBytes {
			continue
		}

		key := dedupKey{total: usage.TotalBytes, used: usage.UsedBytes}
		if i, ok := seen[key]; ok {
			if len(m.Mountpoint) < len(reported[i].Mountpoint) {
				reported[i] = models.ReportedDisk{Mountpoint: m.Mountpoint, Usage: *usage}
			}
			continue
		}

		seen[key] = len(reported)
		reported = append(reported, models.ReportedDisk{Mountpoint: m.Mountpoint, Usage: *usage})
	}

	sort.Slice(reported, func(i, j int) bool {
		return reported[i].Mountpoint < reported[j].Mountpoint
	})

	return reported
}

// ListMounts enumerates all mounted filesystems, including bind mounts
// and virtual filesystems; filtering is the reporter's job.
func ListMounts() ([]models.DiskMount, error) {
	partitions, err := disk.Partitions(true)
	if err != nil {
		return nil, err
	}

	mounts := make([]models.DiskMount, 0, len(partitions))
	for _, p := range partitions {
		mounts = append(mounts, models.DiskMount{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		})
	}
	return mounts, nil
}

// GetDiskUsage returns usage counters for one mount point
func GetDiskUsage(mountpoint string) (*models.DiskUsage, error) {
	usage, err := disk.Usage(mountpoint)
	if err != nil {
		return nil, err
	}

	return &models.DiskUsage{
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// GetReportableDisks runs the full pipeline against the live host
func GetReportableDisks(cfg FilterConfig) ([]models.ReportedDisk, error) {
	mounts, err := ListMounts()
	if err != nil {
		return nil, err
	}
	return NewDiskReporter(cfg).SelectReportableDisks(mounts, GetDiskUsage), nil
}
