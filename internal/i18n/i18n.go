package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleZhCN    = "zh-CN"
	LocaleEnUS    = "en-US"
	DefaultLocale = LocaleEnUS
)

var catalog = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":               "Invalid request parameters",
		"error.internal":                  "Internal server error",
		"error.not_found":                 "Resource not found",
		"error.rate_limited":              "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.vendor_not_found":          "Vendor not found",
		"error.vendor_id_invalid":         "Invalid vendor id",
		"error.vendor_invalid":            "Invalid vendor data",
		"error.vendor_create_failed":      "Failed to create vendor",
		"error.vendor_update_failed":      "Failed to update vendor",
		"error.period_invalid":            "Invalid payout period",
		"error.payout_id_invalid":         "Invalid payout id",
		"error.payout_not_found":          "Payout not found",
		"error.payout_no_orders":          "No delivered orders for period",
		"error.payout_status_invalid":     "Payout is not in %s status",
		"error.payout_already_completed":  "Payout is already completed",
		"error.payout_ledger_conflict":    "Payout ledger entry already exists for an unfinished payout",
		"error.payout_orders_claimed":     "Some orders are already covered by another payout",
		"error.payout_amount_invalid":     "Payout net amount must be greater than zero",
		"error.payout_reference_required": "Payment reference is required",
		"error.payout_reason_required":    "Failure reason is required",
		"error.payout_calculate_failed":   "Failed to calculate payout",
		"error.payout_create_failed":      "Failed to create payout",
		"error.payout_update_failed":      "Failed to update payout",
		"error.payout_fetch_failed":       "Failed to fetch payouts",
		"error.payout_export_failed":      "Failed to export payouts",
		"error.holiday_config_invalid":    "Bank holiday calendar misconfigured",
		"error.holiday_date_invalid":      "Invalid holiday date",
		"error.holiday_exists":            "Holiday already exists",
		"error.holiday_not_found":         "Holiday not found",
		"error.holiday_fetch_failed":      "Failed to fetch bank holidays",
		"error.holiday_update_failed":     "Failed to update bank holidays",
		"error.wallet_fetch_failed":       "Failed to fetch vendor wallet",
		"error.setting_invalid":           "Invalid payout policy",
		"error.setting_update_failed":     "Failed to update payout policy",
		"error.setting_fetch_failed":      "Failed to fetch payout policy",
		"error.financial_year_invalid":    "Invalid financial year",
		"error.report_failed":             "Failed to build payout report",
	},
	LocaleZhCN: {
		"error.bad_request":               "请求参数错误",
		"error.internal":                  "服务器内部错误",
		"error.not_found":                 "资源不存在",
		"error.rate_limited":              "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":    "限流服务不可用",
		"error.vendor_not_found":          "供应商不存在",
		"error.vendor_id_invalid":         "供应商ID无效",
		"error.vendor_invalid":            "供应商资料无效",
		"error.vendor_create_failed":      "创建供应商失败",
		"error.vendor_update_failed":      "更新供应商失败",
		"error.period_invalid":            "结算周期无效",
		"error.payout_id_invalid":         "结算单ID无效",
		"error.payout_not_found":          "结算单不存在",
		"error.payout_no_orders":          "该周期内没有已签收订单",
		"error.payout_status_invalid":     "结算单当前不是 %s 状态",
		"error.payout_already_completed":  "结算单已完成",
		"error.payout_ledger_conflict":    "结算单未完成但已存在付款流水",
		"error.payout_orders_claimed":     "部分订单已被其他结算单覆盖",
		"error.payout_amount_invalid":     "结算净额必须大于 0",
		"error.payout_reference_required": "请填写付款流水号",
		"error.payout_reason_required":    "请填写失败原因",
		"error.payout_calculate_failed":   "结算计算失败",
		"error.payout_create_failed":      "创建结算单失败",
		"error.payout_update_failed":      "更新结算单失败",
		"error.payout_fetch_failed":       "查询结算单失败",
		"error.payout_export_failed":      "导出结算单失败",
		"error.holiday_config_invalid":    "银行假日配置异常",
		"error.holiday_date_invalid":      "假日日期无效",
		"error.holiday_exists":            "假日已存在",
		"error.holiday_not_found":         "假日不存在",
		"error.holiday_fetch_failed":      "查询银行假日失败",
		"error.holiday_update_failed":     "更新银行假日失败",
		"error.wallet_fetch_failed":       "查询供应商钱包失败",
		"error.setting_invalid":           "结算策略配置无效",
		"error.setting_update_failed":     "更新结算策略失败",
		"error.setting_fetch_failed":      "查询结算策略失败",
		"error.financial_year_invalid":    "财年参数无效",
		"error.report_failed":             "生成结算报表失败",
	},
}

// ResolveLocale 从 query 参数或 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := NormalizeLocale(c.Query("lang")); locale != "" {
		return locale
	}
	if c.Request != nil {
		header := c.GetHeader("Accept-Language")
		for _, part := range strings.Split(header, ",") {
			tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
			if locale := NormalizeLocale(tag); locale != "" {
				return locale
			}
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标签，不支持时返回空串
func NormalizeLocale(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case tag == "":
		return ""
	case strings.HasPrefix(tag, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(tag, "en"):
		return LocaleEnUS
	default:
		return ""
	}
}

// T 翻译消息键，缺失时回退默认语言，再回退键本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
