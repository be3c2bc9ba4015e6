package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout 记账日期格式：零填充的 YYYY-MM-DD
const DateLayout = "2006-01-02"

// Date 日历日期（不含时间部分）
// 数据库中按零填充的 ISO 字符串存储（char(10)），写入前必须经过 ParseDate 校验，
// 因此列上的字符串比较与真实日期比较结果一致
type Date struct {
	time.Time
}

// ParseDate 严格解析 YYYY-MM-DD 格式日期
// time.Parse 对未零填充的月/日较宽容（2024-1-5 也能解析），
// 这里通过回转格式化比较拒绝所有非规范形式
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return Date{}, fmt.Errorf("日期格式错误，应为 YYYY-MM-DD: %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Month 返回 YYYY-MM 前缀，月度汇总的分组键
func (d Date) Month() string {
	return d.Format("2006-01")
}

// MarshalJSON 序列化为 "YYYY-MM-DD" 字符串
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON 反序列化，非规范日期直接报错
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 实现 driver.Valuer，按 ISO 字符串写库
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan 实现 sql.Scanner，兼容字符串列与驱动返回的 time.Time
func (d *Date) Scan(v interface{}) error {
	switch val := v.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{time.Date(val.Year(), val.Month(), val.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		parsed, err := ParseDate(string(val))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(val)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("无法将 %T 扫描为 Date", v)
	}
}
