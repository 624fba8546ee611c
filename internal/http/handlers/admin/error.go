package admin

import (
	"errors"
	"strings"

	"github.com/vendorhub/payout/internal/constants"
	handlershared "github.com/vendorhub/payout/internal/http/handlers/shared"
	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/i18n"
	"github.com/vendorhub/payout/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondPayoutError 把结算相关的业务错误映射为响应码，未识别的错误按 fallbackKey 返回 500
func respondPayoutError(c *gin.Context, err error, fallbackKey string) {
	var stateErr *service.PayoutStateError
	switch {
	case errors.As(err, &stateErr):
		locale := i18n.ResolveLocale(c)
		msg := i18n.Sprintf(locale, "error.payout_status_invalid", strings.Join(stateErr.Expected, "|"))
		handlershared.RespondErrorWithData(c, response.CodeConflict, msg, gin.H{
			"payout_id":       stateErr.PayoutID,
			"current_status":  stateErr.Current,
			"expected_status": stateErr.Expected,
		}, err)
	case errors.Is(err, service.ErrPayoutAlreadyCompleted):
		locale := i18n.ResolveLocale(c)
		handlershared.RespondErrorWithData(c, response.CodeConflict, i18n.T(locale, "error.payout_already_completed"), gin.H{
			"current_status": constants.PayoutStatusCompleted,
		}, err)
	case errors.Is(err, service.ErrPayoutLedgerConflict):
		requestLog(c).Errorw("payout_ledger_conflict", "error", err)
		locale := i18n.ResolveLocale(c)
		handlershared.RespondErrorWithData(c, response.CodeConflict, i18n.T(locale, "error.payout_ledger_conflict"), gin.H{
			"current_status": constants.PayoutStatusProcessing,
		}, err)
	case errors.Is(err, service.ErrPayoutOrdersClaimed):
		respondError(c, response.CodeConflict, "error.payout_orders_claimed", nil)
	case errors.Is(err, service.ErrPayoutNotFound):
		respondError(c, response.CodeNotFound, "error.payout_not_found", nil)
	case errors.Is(err, service.ErrVendorNotFound):
		respondError(c, response.CodeNotFound, "error.vendor_not_found", nil)
	case errors.Is(err, service.ErrPayoutNoDeliveredOrders):
		respondError(c, response.CodeNotFound, "error.payout_no_orders", nil)
	case errors.Is(err, service.ErrPeriodInvalid):
		respondError(c, response.CodeBadRequest, "error.period_invalid", nil)
	case errors.Is(err, service.ErrPayoutAmountInvalid):
		respondError(c, response.CodeBadRequest, "error.payout_amount_invalid", nil)
	case errors.Is(err, service.ErrPayoutReferenceRequired):
		respondError(c, response.CodeBadRequest, "error.payout_reference_required", nil)
	case errors.Is(err, service.ErrPayoutReasonRequired):
		respondError(c, response.CodeBadRequest, "error.payout_reason_required", nil)
	case errors.Is(err, service.ErrVendorInvalid):
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
	case errors.Is(err, service.ErrFinancialYearInvalid):
		respondError(c, response.CodeBadRequest, "error.financial_year_invalid", nil)
	case errors.Is(err, service.ErrHolidayLookaheadExceeded):
		requestLog(c).Errorw("bank_holiday_calendar_misconfigured", "error", err)
		respondError(c, response.CodeInternal, "error.holiday_config_invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
