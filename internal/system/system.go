package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryStats is a snapshot of process and host memory.
type MemoryStats struct {
	ProcessRSS   uint64
	HostUsed     uint64
	HostTotal    uint64
	HostUsedPerc float64
}

// ReadMemoryStats samples the current process RSS and host memory usage.
func ReadMemoryStats() (MemoryStats, error) {
	var stats MemoryStats

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("host memory: %w", err)
	}
	stats.HostUsed = vm.Used
	stats.HostTotal = vm.Total
	stats.HostUsedPerc = vm.UsedPercent

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("process handle: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("process memory: %w", err)
	}
	stats.ProcessRSS = info.RSS
	return stats, nil
}

func (m MemoryStats) String() string {
	return fmt.Sprintf("rss=%.1fMiB host=%.1f%% of %.1fGiB",
		float64(m.ProcessRSS)/(1<<20), m.HostUsedPerc, float64(m.HostTotal)/(1<<30))
}

// FindLatestFont returns the most recently modified TTF/OTF file in dir.
func FindLatestFont(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".ttf", ".otf"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isFont := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isFont = true
				break
			}
		}
		if isFont {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no font files in %s", dir)
	}

	return latestFile, nil
}
