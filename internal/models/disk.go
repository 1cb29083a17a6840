package models

// DiskMount represents a single mounted filesystem as enumerated by the OS
type DiskMount struct {
	Device     string `json:"device"`
	Mountpoint string `json:"mountpoint"`
	Fstype     string `json:"fstype"`
}

// DiskUsage represents usage counters for one mounted filesystem
type DiskUsage struct {
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// ReportedDisk is one entry of the final disk report: a mount point that
// survived filtering and deduplication, paired with its usage counters.
// No two ReportedDisk entries in one report share the same
// (TotalBytes, UsedBytes) pair.
type ReportedDisk struct {
	Mountpoint string    `json:"mountpoint"`
	Usage      DiskUsage `json:"usage"`
}
