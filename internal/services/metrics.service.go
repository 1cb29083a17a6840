package services

import (
	"log"
	"runtime"
	"strings"
	"time"

	"zhuangtai/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuSampleInterval is the fixed window over which CPU usage is sampled.
// Kept short so one report stays a point-in-time snapshot.
const cpuSampleInterval = 100 * time.Millisecond

// GetHostStatus returns hostname, OS identity and uptime
func GetHostStatus() (*models.HostStatus, error) {
	info, err := host.Info()
	if err != nil {
		return nil, err
	}

	return &models.HostStatus{
		Hostname:      info.Hostname,
		OS:            info.Platform,
		KernelVersion: info.KernelVersion,
		UptimeSeconds: info.Uptime,
		GoVersion:     runtime.Version(),
	}, nil
}

// GetLoadStatus returns 1/5/15 minute load averages
func GetLoadStatus() (*models.LoadStatus, error) {
	avg, err := load.Avg()
	if err != nil {
		return nil, err
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		log.Printf("Warning: Could not get CPU core count: %v", err)
		cores = 0
	}

	return &models.LoadStatus{
		Load1:        avg.Load1,
		Load5:        avg.Load5,
		Load15:       avg.Load15,
		LogicalCores: cores,
	}, nil
}

// GetCPUStatus returns CPU identity and usage sampled over a short interval
func GetCPUStatus() (*models.CPUStatus, error) {
	percentages, err := cpu.Percent(cpuSampleInterval, false)
	if err != nil {
		return nil, err
	}

	status := &models.CPUStatus{
		UsagePercent: percentages[0],
	}

	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		status.ModelName = info[0].ModelName
		status.FrequencyMHz = info[0].Mhz
	} else if err != nil {
		log.Printf("Warning: Could not get CPU info: %v", err)
	}

	if physical, err := cpu.Counts(false); err == nil {
		status.PhysicalCores = physical
	}
	if logical, err := cpu.Counts(true); err == nil {
		status.LogicalCores = logical
	}

	status.ProcessCount = GetProcessCount()

	return status, nil
}

// GetMemoryStatus returns virtual memory and swap usage
func GetMemoryStatus() (*models.MemoryStatus, error) {
	virtualMemory, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	status := &models.MemoryStatus{
		TotalBytes:     virtualMemory.Total,
		UsedBytes:      virtualMemory.Used,
		AvailableBytes: virtualMemory.Available,
		UsedPercent:    virtualMemory.UsedPercent,
	}

	if swap, err := mem.SwapMemory(); err == nil {
		status.SwapTotalBytes = swap.Total
		status.SwapUsedBytes = swap.Used
		status.SwapPercent = swap.UsedPercent
	} else {
		log.Printf("Warning: Could not get swap usage: %v", err)
	}

	return status, nil
}

// GetCPUTemperature returns the first CPU-looking sensor reading in
// degrees Celsius, or false when no usable sensor exists.
func GetCPUTemperature() (float64, bool) {
	sensors, err := host.SensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return 0, false
	}

	for _, s := range sensors {
		key := strings.ToLower(s.SensorKey)
		if strings.Contains(key, "coretemp") ||
			strings.Contains(key, "k10temp") ||
			strings.Contains(key, "cpu_thermal") ||
			strings.Contains(key, "core") ||
			strings.Contains(key, "cpu") {
			return s.Temperature, true
		}
	}
	return sensors[0].Temperature, true
}

// GetSystemStatus assembles one full snapshot. Sections whose platform
// read fails come back nil so the report can degrade them to N/A instead
// of failing outright.
func GetSystemStatus(filter FilterConfig) *models.SystemStatus {
	status := &models.SystemStatus{}

	if hostStatus, err := GetHostStatus(); err == nil {
		status.Host = hostStatus
	} else {
		log.Printf("Warning: Could not get host status: %v", err)
	}

	if loadStatus, err := GetLoadStatus(); err == nil {
		status.Load = loadStatus
	} else {
		log.Printf("Warning: Could not get load averages: %v", err)
	}

	if cpuStatus, err := GetCPUStatus(); err == nil {
		status.CPU = cpuStatus
	} else {
		log.Printf("Warning: Could not get CPU status: %v", err)
	}

	if memStatus, err := GetMemoryStatus(); err == nil {
		status.Memory = memStatus
	} else {
		log.Printf("Warning: Could not get memory status: %v", err)
	}

	if disks, err := GetReportableDisks(filter); err == nil {
		status.Disks = disks
	} else {
		log.Printf("Warning: Could not enumerate mounts: %v", err)
		status.Disks = []models.ReportedDisk{}
	}

	return status
}
