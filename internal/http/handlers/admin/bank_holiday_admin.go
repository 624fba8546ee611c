package admin

import (
	"errors"
	"strings"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/repository"
	"github.com/vendorhub/payout/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBankHolidayRequest 新增银行假日
type CreateBankHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name"`
}

// ListBankHolidays 查询银行假日，可按 from / to 日期过滤
func (h *Handler) ListBankHolidays(c *gin.Context) {
	holidays, err := h.BankHolidayService.List(repository.BankHolidayListFilter{
		FromDate: strings.TrimSpace(c.Query("from")),
		ToDate:   strings.TrimSpace(c.Query("to")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.holiday_fetch_failed", err)
		return
	}
	response.Success(c, holidays)
}

// CreateBankHoliday 新增银行假日
func (h *Handler) CreateBankHoliday(c *gin.Context) {
	var req CreateBankHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	holiday, err := h.BankHolidayService.Create(c.Request.Context(), req.Date, req.Name)
	if err != nil {
		respondHolidayError(c, err)
		return
	}
	response.Success(c, holiday)
}

// DeleteBankHoliday 删除银行假日
func (h *Handler) DeleteBankHoliday(c *gin.Context) {
	date := strings.TrimSpace(c.Param("date"))
	if err := h.BankHolidayService.Delete(c.Request.Context(), date); err != nil {
		respondHolidayError(c, err)
		return
	}
	response.Success(c, gin.H{"date": date})
}

// GetNextWorkingDay 查询不早于 date 的首个银行工作日
func (h *Handler) GetNextWorkingDay(c *gin.Context) {
	date, err := service.ParseDate(c.Query("date"), h.Location)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.holiday_date_invalid", nil)
		return
	}
	next, err := h.HolidayCalendar.NextWorkingDay(c.Request.Context(), date)
	if err != nil {
		respondHolidayError(c, err)
		return
	}
	response.Success(c, gin.H{
		"date":             date.Format(constants.DateLayout),
		"next_working_day": next.Format(constants.DateLayout),
		"is_working_day":   next.Equal(date),
	})
}

func respondHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayDateInvalid):
		respondError(c, response.CodeBadRequest, "error.holiday_date_invalid", nil)
	case errors.Is(err, service.ErrHolidayExists):
		respondError(c, response.CodeConflict, "error.holiday_exists", nil)
	case errors.Is(err, service.ErrHolidayNotFound):
		respondError(c, response.CodeNotFound, "error.holiday_not_found", nil)
	case errors.Is(err, service.ErrHolidayLookaheadExceeded):
		requestLog(c).Errorw("bank_holiday_calendar_misconfigured", "error", err)
		respondError(c, response.CodeInternal, "error.holiday_config_invalid", nil)
	case errors.Is(err, service.ErrHolidayFetchFailed):
		respondError(c, response.CodeInternal, "error.holiday_fetch_failed", err)
	default:
		respondError(c, response.CodeInternal, "error.holiday_update_failed", err)
	}
}
