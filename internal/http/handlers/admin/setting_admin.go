package admin

import (
	"errors"

	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdatePayoutPolicyRequest 结算策略更新，缺省字段保持当前值
type UpdatePayoutPolicyRequest struct {
	DefaultCommissionRate *float64 `json:"default_commission_rate"`
	CommissionGSTRate     *float64 `json:"commission_gst_rate"`
	TDSRate               *float64 `json:"tds_rate"`
	ReturnPeriodDays      *int     `json:"return_period_days"`
}

// GetPayoutPolicy 当前结算策略
func (h *Handler) GetPayoutPolicy(c *gin.Context) {
	policy, err := h.SettingService.GetPayoutPolicy(h.payoutPolicyFallback())
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, policy)
}

// UpdatePayoutPolicy 更新结算策略，仅影响之后的试算与结算单
func (h *Handler) UpdatePayoutPolicy(c *gin.Context) {
	var req UpdatePayoutPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	current, err := h.SettingService.GetPayoutPolicy(h.payoutPolicyFallback())
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	if req.DefaultCommissionRate != nil {
		current.DefaultCommissionRate = *req.DefaultCommissionRate
	}
	if req.CommissionGSTRate != nil {
		current.CommissionGSTRate = *req.CommissionGSTRate
	}
	if req.TDSRate != nil {
		current.TDSRate = *req.TDSRate
	}
	if req.ReturnPeriodDays != nil {
		current.ReturnPeriodDays = *req.ReturnPeriodDays
	}
	updated, err := h.SettingService.UpdatePayoutPolicy(current)
	if err != nil {
		if errors.Is(err, service.ErrPayoutPolicyInvalid) {
			requestLog(c).Warnw("admin_payout_policy_invalid", "error", err)
			respondError(c, response.CodeBadRequest, "error.setting_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.setting_update_failed", err)
		return
	}
	adminID, _ := getAdminID(c)
	requestLog(c).Infow("admin_payout_policy_updated",
		"admin_id", adminID,
		"default_commission_rate", updated.DefaultCommissionRate,
		"commission_gst_rate", updated.CommissionGSTRate,
		"tds_rate", updated.TDSRate,
		"return_period_days", updated.ReturnPeriodDays,
	)
	response.Success(c, updated)
}

func (h *Handler) payoutPolicyFallback() service.PayoutPolicyConfig {
	if h.Config == nil {
		return service.PayoutPolicyDefault()
	}
	return service.PayoutPolicyFromConfig(h.Config.Payout)
}
