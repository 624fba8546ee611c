package models

import (
	"database/sql/driver"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate 百分比费率（如 10 表示 10%），以定点小数持久化，最多保留 4 位小数
type Rate struct {
	decimal.Decimal
}

const rateScale = 4

// NewRate 从 decimal 创建费率
func NewRate(value decimal.Decimal) Rate {
	return Rate{Decimal: value.Round(rateScale)}
}

// MustRate 解析费率字符串，失败时 panic，仅用于常量与测试数据
func MustRate(raw string) Rate {
	return NewRate(decimal.RequireFromString(raw))
}

// MarshalJSON 输出 JSON 数字，如 8.5
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.Decimal.Round(rateScale).String()), nil
}

// UnmarshalJSON 解析费率（字符串或数字）
func (r *Rate) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		r.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	*r = NewRate(d)
	return nil
}

// Value 用于数据库写入
func (r Rate) Value() (driver.Value, error) {
	return r.Decimal.Round(rateScale).Value()
}

// Scan 用于数据库读取
func (r *Rate) Scan(value interface{}) error {
	if err := r.Decimal.Scan(value); err != nil {
		return err
	}
	r.Decimal = r.Decimal.Round(rateScale)
	return nil
}

// String 返回去掉多余 0 的文本
func (r Rate) String() string {
	return r.Decimal.Round(rateScale).String()
}
