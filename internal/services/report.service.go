package services

import (
	"fmt"
	"strings"

	"zhuangtai/internal/models"
)

const barLength = 15

// Section boundary strings. Downstream chat-bot consumers parse this
// exact box-drawing layout, so none of these may change.
const (
	headerSystem = "┌── 系统信息 ────────────────────"
	headerLoad   = "┌── 系统负载 ─────────────────────"
	headerCPU    = "┌── CPU信息 ────────────────────"
	headerMemory = "┌── 内存信息 ─────────────────────"
	headerDisk   = "┌── 磁盘信息 ─────────────────────"
	footer       = "└───────────────────────────────────"

	noDiskDataLine = "│ 未找到或无法读取主要磁盘信息。"
)

// formatBytes renders a byte count with binary steps and one decimal,
// e.g. 1.5 GB. The divisor is 1024 but the labels stay KB/MB/GB; this is
// part of the report's textual contract.
func formatBytes(size uint64) string {
	labels := []string{"", "K", "M", "G", "T"}
	value := float64(size)
	n := 0
	for value >= 1024 && n < len(labels)-1 {
		value /= 1024
		n++
	}
	return fmt.Sprintf("%.1f %sB", value, labels[n])
}

// formatUptime renders seconds as 天/小时/分钟 components
func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d天", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d小时", hours))
	}
	if minutes > 0 || (days == 0 && hours == 0) {
		parts = append(parts, fmt.Sprintf("%d分钟", minutes))
	}
	if len(parts) == 0 {
		return "小于1分钟"
	}
	return strings.Join(parts, " ")
}

// usageBar renders a fixed-width ■/□ gauge. Out-of-range percentages
// clamp to an empty bar.
func usageBar(percent float64) string {
	if percent < 0 || percent > 100 {
		percent = 0
	}
	filled := int(float64(barLength) * percent / 100)
	return "[" + strings.Repeat("■", filled) + strings.Repeat("□", barLength-filled) + "]"
}

// loadMark returns ✓ while a load average stays under the safe
// threshold of 0.7 per logical core, ✗ otherwise.
func loadMark(loadValue float64, cores int) string {
	if loadValue < float64(cores)*0.7 {
		return "✓"
	}
	return "✗"
}

// StatusReportLines formats one snapshot into the report's text lines.
// A nil section degrades to N/A placeholders; formatting never fails.
func StatusReportLines(status *models.SystemStatus) []string {
	var lines []string

	lines = append(lines, headerSystem, "│")
	if status.Host != nil {
		lines = append(lines,
			fmt.Sprintf("│ 运行时间: %s", formatUptime(status.Host.UptimeSeconds)),
			fmt.Sprintf("│ Go版本: %s", status.Host.GoVersion),
			fmt.Sprintf("│ 操作系统: %s %s", status.Host.OS, status.Host.KernelVersion),
			fmt.Sprintf("│ 主机名: %s", status.Host.Hostname),
		)
	} else {
		lines = append(lines,
			"│ 运行时间: N/A",
			"│ Go版本: N/A",
			"│ 操作系统: N/A",
			"│ 主机名: N/A",
		)
	}
	lines = append(lines, "│ ")

	lines = append(lines, headerLoad)
	if status.Load != nil {
		cores := status.Load.LogicalCores
		lines = append(lines,
			fmt.Sprintf("│ 1分钟负载: %.2f %s", status.Load.Load1, loadMark(status.Load.Load1, cores)),
			fmt.Sprintf("│ 5分钟负载: %.2f %s", status.Load.Load5, loadMark(status.Load.Load5, cores)),
			fmt.Sprintf("│ 15分钟负载: %.2f %s", status.Load.Load15, loadMark(status.Load.Load15, cores)),
			fmt.Sprintf("│ CPU逻辑核心: %d", cores),
		)
	} else {
		lines = append(lines, "│ 无法获取系统负载信息")
	}
	lines = append(lines, "│ ")

	lines = append(lines, headerCPU)
	if status.CPU != nil {
		model := status.CPU.ModelName
		if model == "" {
			model = "N/A"
		}
		lines = append(lines, fmt.Sprintf("│ CPU型号: %s", model))
		lines = append(lines, fmt.Sprintf("│ 物理/逻辑核心: %s核 / %s线程",
			orNA(status.CPU.PhysicalCores), orNA(status.CPU.LogicalCores)))
		if status.CPU.FrequencyMHz > 0 {
			lines = append(lines, fmt.Sprintf("│ 当前主频: %.0f MHz", status.CPU.FrequencyMHz))
		} else {
			lines = append(lines, "│ 主频: N/A")
		}
		lines = append(lines,
			fmt.Sprintf("│ CPU使用率: %s %.1f%%", usageBar(status.CPU.UsagePercent), status.CPU.UsagePercent),
			fmt.Sprintf("│ 进程总数: %d", status.CPU.ProcessCount),
		)
	} else {
		lines = append(lines, "│ 无法获取CPU信息")
	}
	lines = append(lines, "│ ")

	lines = append(lines, headerMemory)
	if status.Memory != nil {
		lines = append(lines,
			fmt.Sprintf("│ 总内存: %s", formatBytes(status.Memory.TotalBytes)),
			fmt.Sprintf("│ 已用内存: %s %s %.1f%%",
				formatBytes(status.Memory.UsedBytes), usageBar(status.Memory.UsedPercent), status.Memory.UsedPercent),
			fmt.Sprintf("│ 可用内存: %s", formatBytes(status.Memory.AvailableBytes)),
		)
		if status.Memory.SwapTotalBytes > 0 {
			lines = append(lines, fmt.Sprintf("│ SWAP: %s/%s (%.1f%%)",
				formatBytes(status.Memory.SwapUsedBytes), formatBytes(status.Memory.SwapTotalBytes), status.Memory.SwapPercent))
		} else {
			lines = append(lines, "│ SWAP: 未启用")
		}
	} else {
		lines = append(lines, "│ 无法获取内存信息")
	}
	lines = append(lines, "│ ")

	lines = append(lines, headerDisk)
	if len(status.Disks) > 0 {
		for i, d := range status.Disks {
			if i > 0 {
				lines = append(lines, "│")
			}
			lines = append(lines,
				fmt.Sprintf("│ 挂载点: %s", d.Mountpoint),
				fmt.Sprintf("│ 总空间: %s", formatBytes(d.Usage.TotalBytes)),
				fmt.Sprintf("│ 已用空间: %s %s %.1f%%",
					formatBytes(d.Usage.UsedBytes), usageBar(d.Usage.UsedPercent), d.Usage.UsedPercent),
				fmt.Sprintf("│ 可用空间: %s", formatBytes(d.Usage.FreeBytes)),
			)
		}
	} else {
		lines = append(lines, noDiskDataLine)
	}
	lines = append(lines, footer)

	return lines
}

func orNA(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

// GenerateStatusReport takes a fresh snapshot and formats it with the
// given disk filter table.
func GenerateStatusReport(filter FilterConfig) string {
	return strings.Join(StatusReportLines(GetSystemStatus(filter)), "\n")
}

// StatusReportText is the no-argument entry point: one full report as a
// single string, using the stock filter table.
func StatusReportText() string {
	return GenerateStatusReport(DefaultFilterConfig())
}
