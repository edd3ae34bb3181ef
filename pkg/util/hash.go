package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash/fnv"
)

// EncodeMD5 returns the hex md5 digest of str
// EncodeMD5 返回 str 的十六进制 md5 摘要
func EncodeMD5(str string) string {
	m := md5.New()
	m.Write([]byte(str))
	return hex.EncodeToString(m.Sum(nil))
}

// EncodeHash32 returns a short fnv32 hash of content
// EncodeHash32 返回内容的 fnv32 短哈希
func EncodeHash32(content string) string {
	h := fnv.New32a()
	h.Write([]byte(content))
	return fmt.Sprintf("%08x", h.Sum32())
}
