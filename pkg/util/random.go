package util

import (
	"math/rand"
	"time"
)

// GenerateRandomSingleNumber 生成 [start, end] 范围内的单个随机整数
func GenerateRandomSingleNumber(start int, end int) int {
	if end <= start {
		return start
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return start + r.Intn(end-start+1)
}

// GetRandomString generates a random alphanumeric string of the given length
// GetRandomString 生成指定长度的随机字母数字字符串
func GetRandomString(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = chars[r.Intn(len(chars))]
	}
	return string(b)
}
