// Package sysinfo takes a point-in-time snapshot of host capacity for the
// readiness report.
package sysinfo

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const bytesPerGB = 1 << 30

// Info describes the host a workload would run on.
type Info struct {
	Hostname       string  `json:"hostname"`
	Platform       string  `json:"platform"`
	KernelVersion  string  `json:"kernel_version,omitempty"`
	CPUCount       int     `json:"cpu_count"`
	TotalMemGB     float64 `json:"total_mem_gb"`
	AvailableMemGB float64 `json:"available_mem_gb"`
	FreeDiskGB     float64 `json:"free_disk_gb"`
}

// Collect gathers host information. path selects the filesystem whose free
// space is reported, typically the working directory or the model path.
func Collect(path string) (Info, error) {
	info := Info{}

	hostInfo, err := host.Info()
	if err != nil {
		return info, fmt.Errorf("failed to read host info: %w", err)
	}
	info.Hostname = hostInfo.Hostname
	info.Platform = hostInfo.Platform
	if hostInfo.PlatformVersion != "" {
		info.Platform = hostInfo.Platform + " " + hostInfo.PlatformVersion
	}
	info.KernelVersion = hostInfo.KernelVersion

	counts, err := cpu.Counts(true)
	if err != nil {
		return info, fmt.Errorf("failed to count CPUs: %w", err)
	}
	info.CPUCount = counts

	vm, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("failed to read memory info: %w", err)
	}
	info.TotalMemGB = roundGB(vm.Total)
	info.AvailableMemGB = roundGB(vm.Available)

	usage, err := disk.Usage(path)
	if err != nil {
		return info, fmt.Errorf("failed to read disk usage for %s: %w", path, err)
	}
	info.FreeDiskGB = roundGB(usage.Free)

	return info, nil
}

func roundGB(bytes uint64) float64 {
	return math.Round(float64(bytes)/bytesPerGB*100) / 100
}
