package models

// HostStatus represents basic host identity and uptime information
type HostStatus struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	KernelVersion string `json:"kernel_version"`
	UptimeSeconds uint64 `json:"uptime_seconds"`
	GoVersion     string `json:"go_version"`
}

// LoadStatus represents system load averages
type LoadStatus struct {
	Load1        float64 `json:"load1"`
	Load5        float64 `json:"load5"`
	Load15       float64 `json:"load15"`
	LogicalCores int     `json:"logical_cores"`
}

// CPUStatus represents CPU identity and current usage
type CPUStatus struct {
	ModelName     string  `json:"model_name"`
	PhysicalCores int     `json:"physical_cores"`
	LogicalCores  int     `json:"logical_cores"`
	FrequencyMHz  float64 `json:"frequency_mhz"`
	UsagePercent  float64 `json:"usage_percent"`
	ProcessCount  int     `json:"process_count"`
}

// MemoryStatus represents virtual memory and swap usage
type MemoryStatus struct {
	TotalBytes     uint64  `json:"total_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedPercent    float64 `json:"used_percent"`
	SwapTotalBytes uint64  `json:"swap_total_bytes"`
	SwapUsedBytes  uint64  `json:"swap_used_bytes"`
	SwapPercent    float64 `json:"swap_percent"`
}

// SystemStatus combines one point-in-time snapshot of all sections.
// Any section whose platform read failed is nil; the report renders
// a placeholder for it instead of failing.
type SystemStatus struct {
	Host   *HostStatus    `json:"host"`
	Load   *LoadStatus    `json:"load"`
	CPU    *CPUStatus     `json:"cpu"`
	Memory *MemoryStatus  `json:"memory"`
	Disks  []ReportedDisk `json:"disks"`
}
