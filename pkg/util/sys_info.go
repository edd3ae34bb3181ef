package util

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SysInfo snapshot of the host the service runs on
// SysInfo 服务所在主机的快照信息
type SysInfo struct {
	OS            string  `json:"os"`
	Platform      string  `json:"platform"`
	KernelVersion string  `json:"kernelVersion"`
	GoVersion     string  `json:"goVersion"`
	NumCPU        int     `json:"numCpu"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemTotal      uint64  `json:"memTotal"`
	MemUsed       uint64  `json:"memUsed"`
	MemPercent    float64 `json:"memPercent"`
	UptimeSec     uint64  `json:"uptimeSec"`
}

// GetSysInfo collects a best-effort host snapshot, never failing hard
// GetSysInfo 尽力收集主机快照，采集失败的项保持零值
func GetSysInfo() *SysInfo {
	info := &SysInfo{
		OS:        runtime.GOOS,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
	}

	if h, err := host.Info(); err == nil {
		info.Platform = h.Platform + " " + h.PlatformVersion
		info.KernelVersion = h.KernelVersion
		info.UptimeSec = h.Uptime
	}

	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}

	if m, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = m.Total
		info.MemUsed = m.Used
		info.MemPercent = m.UsedPercent
	}

	return info
}
