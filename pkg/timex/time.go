package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02 15:04:05"

// Time wraps time.Time with a fixed JSON layout used across models and DTOs
// Time 封装 time.Time，模型与 DTO 中统一使用固定的 JSON 时间格式
type Time time.Time

func Now() Time {
	return Time(time.Now())
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(t).Format(layout))), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+layout+`"`, string(data), time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// Value implements driver.Valuer so gorm can persist the wrapped time
// Value 实现 driver.Valuer，便于 gorm 持久化
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
// Scan 实现 sql.Scanner
func (t *Time) Scan(v any) error {
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(layout, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	case string:
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	case nil:
		return nil
	}
	return fmt.Errorf("cannot convert %v to timex.Time", v)
}
