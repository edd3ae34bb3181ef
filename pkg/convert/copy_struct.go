package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst and returns dst
// StructAssign 将 src 中同名字段复制到 dst 并返回 dst
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// StructToMap serializes a struct into the given map via JSON round-trip
// StructToMap 通过 JSON 往返将结构体序列化到给定 map
func StructToMap(param any, data map[string]interface{}) error {
	str, _ := sonic.Marshal(param)
	return sonic.Unmarshal(str, &data)
}

// DeepClone makes a deep copy of src into dst via a sonic round-trip
// Used for frozen snapshots: the result shares no memory with the source
// DeepClone 通过 sonic 往返将 src 深拷贝到 dst
// 用于冻结快照：结果与源不共享任何内存
func DeepClone(src any, dst any) error {
	buf, err := sonic.Marshal(src)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(buf, dst)
}
