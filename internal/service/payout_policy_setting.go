package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"
)

const (
	payoutRateMin             = 0
	payoutRateMax             = 100
	payoutReturnPeriodDaysMin = 0
	payoutReturnPeriodDaysMax = 365
)

// PayoutPolicyConfig 结算策略：百分比以整数表示，10 即 10%
type PayoutPolicyConfig struct {
	DefaultCommissionRate float64 `json:"default_commission_rate"`
	CommissionGSTRate     float64 `json:"commission_gst_rate"`
	TDSRate               float64 `json:"tds_rate"`
	ReturnPeriodDays      int     `json:"return_period_days"`
}

// PayoutPolicyDefault 默认结算策略 10 / 18 / 1 / 30
func PayoutPolicyDefault() PayoutPolicyConfig {
	return PayoutPolicyConfig{
		DefaultCommissionRate: 10,
		CommissionGSTRate:     18,
		TDSRate:               1,
		ReturnPeriodDays:      30,
	}
}

// PayoutPolicyFromConfig 从配置文件构建回退策略，非法值回退默认值
func PayoutPolicyFromConfig(cfg config.PayoutConfig) PayoutPolicyConfig {
	policy := PayoutPolicyConfig{
		DefaultCommissionRate: cfg.DefaultCommissionRate,
		CommissionGSTRate:     cfg.CommissionGSTRate,
		TDSRate:               cfg.TDSRate,
		ReturnPeriodDays:      cfg.ReturnPeriodDays,
	}
	if ValidatePayoutPolicy(policy) != nil {
		return PayoutPolicyDefault()
	}
	return policy
}

// NormalizePayoutPolicy 比例保留 2 位小数
func NormalizePayoutPolicy(policy PayoutPolicyConfig) PayoutPolicyConfig {
	policy.DefaultCommissionRate = roundRate(policy.DefaultCommissionRate)
	policy.CommissionGSTRate = roundRate(policy.CommissionGSTRate)
	policy.TDSRate = roundRate(policy.TDSRate)
	return policy
}

// ValidatePayoutPolicy 校验结算策略
func ValidatePayoutPolicy(policy PayoutPolicyConfig) error {
	rates := []struct {
		name  string
		value float64
	}{
		{constants.SettingFieldDefaultCommissionRate, policy.DefaultCommissionRate},
		{constants.SettingFieldCommissionGSTRate, policy.CommissionGSTRate},
		{constants.SettingFieldTDSRate, policy.TDSRate},
	}
	for _, rate := range rates {
		if math.IsNaN(rate.value) || rate.value < payoutRateMin || rate.value > payoutRateMax {
			return fmt.Errorf("%w: %s must be within 0-100", ErrPayoutPolicyInvalid, rate.name)
		}
	}
	if policy.ReturnPeriodDays < payoutReturnPeriodDaysMin || policy.ReturnPeriodDays > payoutReturnPeriodDaysMax {
		return fmt.Errorf("%w: %s must be within 0-365", ErrPayoutPolicyInvalid, constants.SettingFieldReturnPeriodDays)
	}
	return nil
}

// PayoutPolicyToMap 转换为设置存储结构
func PayoutPolicyToMap(policy PayoutPolicyConfig) map[string]interface{} {
	normalized := NormalizePayoutPolicy(policy)
	return map[string]interface{}{
		constants.SettingFieldDefaultCommissionRate: normalized.DefaultCommissionRate,
		constants.SettingFieldCommissionGSTRate:     normalized.CommissionGSTRate,
		constants.SettingFieldTDSRate:               normalized.TDSRate,
		constants.SettingFieldReturnPeriodDays:      normalized.ReturnPeriodDays,
	}
}

// payoutPolicyFromJSON 缺失或非法的字段保留 fallback 值
func payoutPolicyFromJSON(raw models.JSON, fallback PayoutPolicyConfig) PayoutPolicyConfig {
	result := fallback
	if value, ok := raw[constants.SettingFieldDefaultCommissionRate]; ok {
		if parsed, err := parseSettingFloat(value); err == nil {
			result.DefaultCommissionRate = parsed
		}
	}
	if value, ok := raw[constants.SettingFieldCommissionGSTRate]; ok {
		if parsed, err := parseSettingFloat(value); err == nil {
			result.CommissionGSTRate = parsed
		}
	}
	if value, ok := raw[constants.SettingFieldTDSRate]; ok {
		if parsed, err := parseSettingFloat(value); err == nil {
			result.TDSRate = parsed
		}
	}
	if value, ok := raw[constants.SettingFieldReturnPeriodDays]; ok {
		if parsed, err := parseSettingInt(value); err == nil {
			result.ReturnPeriodDays = parsed
		}
	}
	result = NormalizePayoutPolicy(result)
	if ValidatePayoutPolicy(result) != nil {
		return fallback
	}
	return result
}

// GetPayoutPolicy 获取结算策略（优先 settings，空时回退 fallback）
func (s *SettingService) GetPayoutPolicy(fallback PayoutPolicyConfig) (PayoutPolicyConfig, error) {
	if s == nil {
		return fallback, nil
	}
	value, err := s.GetByKey(constants.SettingKeyPayoutPolicy)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return payoutPolicyFromJSON(value, fallback), nil
}

// UpdatePayoutPolicy 更新结算策略，仅影响之后的试算与结算单
func (s *SettingService) UpdatePayoutPolicy(policy PayoutPolicyConfig) (PayoutPolicyConfig, error) {
	normalized := NormalizePayoutPolicy(policy)
	if err := ValidatePayoutPolicy(normalized); err != nil {
		return PayoutPolicyConfig{}, err
	}
	if _, err := s.Update(constants.SettingKeyPayoutPolicy, PayoutPolicyToMap(normalized)); err != nil {
		return PayoutPolicyConfig{}, err
	}
	return normalized, nil
}

func roundRate(value float64) float64 {
	return math.Round(value*100) / 100
}

func parseSettingFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("unsupported setting value %T", raw)
	}
}

func parseSettingInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("setting value %v is not an integer", v)
		}
		return int(v), nil
	case json.Number:
		parsed, err := v.Int64()
		return int(parsed), err
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("unsupported setting value %T", raw)
	}
}
