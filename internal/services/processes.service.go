package services

import (
	"log"
	"sort"
	"strings"

	"zhuangtai/internal/models"

	"github.com/shirou/gopsutil/v3/process"
)

// GetProcessCount returns the number of live processes, 0 when the
// process table is unreadable.
func GetProcessCount() int {
	pids, err := process.Pids()
	if err != nil {
		log.Printf("Warning: Could not list PIDs: %v", err)
		return 0
	}
	return len(pids)
}

// GetTopProcesses returns up to limit processes ordered by combined
// CPU and memory pressure. Processes that disappear mid-scan are skipped.
func GetTopProcesses(limit int) ([]models.ProcessStatus, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	type scored struct {
		models.ProcessStatus
		score float64
	}

	var candidates []scored
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}

		cpuPercent, _ := p.CPUPercent()
		memPercent, _ := p.MemoryPercent()
		statusList, _ := p.Status()

		candidates = append(candidates, scored{
			ProcessStatus: models.ProcessStatus{
				PID:        p.Pid,
				Name:       name,
				CPUPercent: cpuPercent,
				MemPercent: memPercent,
				Status:     strings.Join(statusList, ","),
			},
			score: cpuPercent + float64(memPercent),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]models.ProcessStatus, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.ProcessStatus)
	}
	return result, nil
}
