package validate

import (
	"math"
	"strconv"
	"strings"

	"budgetbuddy/models"
)

// FormatError 输入格式校验失败
// 以显式错误值表达校验结果，处理器统一映射为 400
type FormatError struct {
	Field   string
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Date 校验日期字符串为零填充的 YYYY-MM-DD 格式
// 校验通过时返回的 Date 与输入字符串完全等价（Date.String() == s）
func Date(s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, &FormatError{Field: "date", Message: "日期格式错误，应为 YYYY-MM-DD"}
	}
	return d, nil
}

// Amount 校验字符串金额可解析为有限浮点数
// 不做范围校验，负数金额（退款）是允许的
func Amount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &FormatError{Field: "amount", Message: "金额必须是数字"}
	}
	return AmountValue(v)
}

// AmountValue 校验已解析的金额为有限数（拒绝 NaN 和 ±Inf）
func AmountValue(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Field: "amount", Message: "金额必须是有限数字"}
	}
	return v, nil
}
