package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.String())
	assert.Equal(t, "2024-01", d.Month())

	// 非规范形式全部拒绝
	invalid := []string{
		"",
		"2024-1-15",   // 月未零填充
		"2024-01-5",   // 日未零填充
		"2024/01/15",  // 分隔符错误
		"15-01-2024",  // 顺序错误
		"2024-13-01",  // 无效月份
		"2024-02-30",  // 无效日期
		"abcd-ef-gh",  // 非数字
		"2024-01-15 ", // 尾部空白
	}
	for _, s := range invalid {
		_, err := ParseDate(s)
		assert.Error(t, err, "should reject %q", s)
	}
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2024-03-08")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-08"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-08"`), &back))
	assert.Equal(t, d.String(), back.String())

	assert.Error(t, json.Unmarshal([]byte(`"2024-3-8"`), &back))
}

func TestDate_ScanValue(t *testing.T) {
	var d Date

	// 字符串列
	require.NoError(t, d.Scan("2024-06-01"))
	assert.Equal(t, "2024-06-01", d.String())

	// []byte（MySQL 驱动常见返回）
	require.NoError(t, d.Scan([]byte("2024-06-02")))
	assert.Equal(t, "2024-06-02", d.String())

	// time.Time（parseTime=True 时）
	require.NoError(t, d.Scan(time.Date(2024, 6, 3, 15, 4, 5, 0, time.Local)))
	assert.Equal(t, "2024-06-03", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", v)

	assert.Error(t, d.Scan(12345))
}
