package util

import (
	"github.com/denisbrodbeck/machineid"
)

// GetMachineID returns a hashed, app-scoped machine identifier
// GetMachineID 返回经过哈希的、应用范围内的机器标识
// Falls back to "unknown" when the platform id cannot be read
// 读取不到平台 id 时回退为 "unknown"
func GetMachineID() string {
	id, err := machineid.ProtectedID("storyboard-studio-service")
	if err != nil {
		return "unknown"
	}
	return id
}
