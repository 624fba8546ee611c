package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/vendorhub/payout/internal/http/handlers/shared"
	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"
	"github.com/vendorhub/payout/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CalculatePayoutRequest 结算试算请求
type CalculatePayoutRequest struct {
	VendorID    uint   `json:"vendor_id" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// CreatePayoutRequest 创建结算单请求
type CreatePayoutRequest struct {
	VendorID         uint   `json:"vendor_id" binding:"required"`
	PeriodStart      string `json:"period_start" binding:"required"`
	PeriodEnd        string `json:"period_end" binding:"required"`
	AdjustmentAmount string `json:"adjustment_amount"`
	AdjustmentReason string `json:"adjustment_reason"`
	AdminNotes       string `json:"admin_notes"`
}

// CompletePayoutRequest 付款完成请求
type CompletePayoutRequest struct {
	PaymentMethod    string                 `json:"payment_method"`
	PaymentReference string                 `json:"payment_reference"`
	PaymentGateway   string                 `json:"payment_gateway"`
	PaymentResponse  map[string]interface{} `json:"payment_response"`
}

// FailPayoutRequest 付款失败请求
type FailPayoutRequest struct {
	FailureReason string `json:"failure_reason"`
}

// CalculatePayout 试算供应商周期结算（不落库）
func (h *Handler) CalculatePayout(c *gin.Context) {
	var req CalculatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	calc, err := h.PayoutService.Calculate(c.Request.Context(), service.CalculatePayoutInput{
		VendorID:    req.VendorID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	})
	if err != nil {
		respondPayoutError(c, err, "error.payout_calculate_failed")
		return
	}
	response.Success(c, calc.View())
}

// CreatePayout 创建待处理结算单
func (h *Handler) CreatePayout(c *gin.Context) {
	var req CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	adjustment, err := models.NewMoneyFromString(req.AdjustmentAmount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	payout, err := h.PayoutService.Create(c.Request.Context(), service.CreatePayoutInput{
		VendorID:         req.VendorID,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		AdjustmentAmount: adjustment,
		AdjustmentReason: req.AdjustmentReason,
		AdminNotes:       req.AdminNotes,
		AdminID:          adminID,
	})
	if err != nil {
		respondPayoutError(c, err, "error.payout_create_failed")
		return
	}
	response.Success(c, payout)
}

// ProcessPayout pending -> processing
func (h *Handler) ProcessPayout(c *gin.Context) {
	payoutID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.payout_id_invalid", nil)
		return
	}
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	payout, err := h.PayoutService.Process(c.Request.Context(), payoutID, adminID)
	if err != nil {
		respondPayoutError(c, err, "error.payout_update_failed")
		return
	}
	response.Success(c, payout)
}

// CompletePayout processing -> completed，返回结算单与钱包快照
func (h *Handler) CompletePayout(c *gin.Context) {
	payoutID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.payout_id_invalid", nil)
		return
	}
	var req CompletePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var paymentResponse models.JSON
	if req.PaymentResponse != nil {
		paymentResponse = models.JSON(req.PaymentResponse)
	}
	payout, wallet, err := h.PayoutService.Complete(c.Request.Context(), payoutID, service.CompletePayoutInput{
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		PaymentGateway:   req.PaymentGateway,
		PaymentResponse:  paymentResponse,
	})
	if err != nil {
		respondPayoutError(c, err, "error.payout_update_failed")
		return
	}
	response.Success(c, gin.H{
		"payout": payout,
		"wallet": wallet,
	})
}

// FailPayout pending|processing -> failed
func (h *Handler) FailPayout(c *gin.Context) {
	payoutID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.payout_id_invalid", nil)
		return
	}
	var req FailPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	payout, err := h.PayoutService.Fail(c.Request.Context(), payoutID, req.FailureReason)
	if err != nil {
		respondPayoutError(c, err, "error.payout_update_failed")
		return
	}
	response.Success(c, payout)
}

// GetPayout 结算单详情
func (h *Handler) GetPayout(c *gin.Context) {
	payoutID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.payout_id_invalid", nil)
		return
	}
	payout, err := h.PayoutService.Get(payoutID)
	if err != nil {
		respondPayoutError(c, err, "error.payout_fetch_failed")
		return
	}
	response.Success(c, payout)
}

// ListPayouts 分页查询结算单
func (h *Handler) ListPayouts(c *gin.Context) {
	filter, ok := h.parsePayoutListFilter(c)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = handlershared.ParsePagination(c)
	payouts, total, err := h.PayoutService.List(filter)
	if err != nil {
		respondPayoutError(c, err, "error.payout_fetch_failed")
		return
	}
	response.SuccessWithPage(c, payouts, handlershared.BuildPagination(filter.Page, filter.PageSize, total))
}

// ExportPayouts 导出结算单 Excel
func (h *Handler) ExportPayouts(c *gin.Context) {
	filter, ok := h.parsePayoutListFilter(c)
	if !ok {
		return
	}
	export, err := h.PayoutExportService.Export(filter)
	if err != nil {
		respondPayoutError(c, err, "error.payout_export_failed")
		return
	}
	requestLog(c).Infow("admin_payout_export", "rows", export.Rows, "total", export.Total)
	c.Header("X-Total-Count", strconv.FormatInt(export.Total, 10))
	if export.Truncated() {
		c.Header("X-Export-Truncated", "true")
	}
	filename := fmt.Sprintf("payouts_%s.xlsx", time.Now().In(h.Location).Format("20060102_150405"))
	response.Attachment(c, filename, xlsxContentType, export.Content)
}

// GetTDSSummary 财年 TDS 汇总，financial_year 缺省为当前财年
func (h *Handler) GetTDSSummary(c *gin.Context) {
	vendorID, ok := handlershared.ParseQueryUint(c, "vendor_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
		return
	}
	financialYear := service.CurrentFinancialYear(time.Now().In(h.Location))
	if raw := strings.TrimSpace(c.Query("financial_year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.financial_year_invalid", nil)
			return
		}
		financialYear = parsed
	}
	summary, err := h.PayoutReportService.TDSSummary(vendorID, financialYear)
	if err != nil {
		respondPayoutError(c, err, "error.report_failed")
		return
	}
	response.Success(c, summary)
}

// GetRevenueSummary 平台佣金收入汇总
func (h *Handler) GetRevenueSummary(c *gin.Context) {
	summary, err := h.PayoutReportService.RevenueSummary(c.Query("from"), c.Query("to"))
	if err != nil {
		respondPayoutError(c, err, "error.report_failed")
		return
	}
	response.Success(c, summary)
}

func (h *Handler) parsePayoutListFilter(c *gin.Context) (repository.PayoutListFilter, bool) {
	vendorID, ok := handlershared.ParseQueryUint(c, "vendor_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
		return repository.PayoutListFilter{}, false
	}
	filter := repository.PayoutListFilter{
		VendorID: vendorID,
		Status:   strings.TrimSpace(c.Query("status")),
		PayoutNo: strings.TrimSpace(c.Query("payout_no")),
	}
	if raw := strings.TrimSpace(c.Query("created_from")); raw != "" {
		from, err := service.ParseDate(raw, h.Location)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.period_invalid", nil)
			return repository.PayoutListFilter{}, false
		}
		filter.CreatedFrom = &from
	}
	if raw := strings.TrimSpace(c.Query("created_to")); raw != "" {
		to, err := service.ParseDate(raw, h.Location)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.period_invalid", nil)
			return repository.PayoutListFilter{}, false
		}
		endOfDay := to.AddDate(0, 0, 1).Add(-time.Second)
		filter.CreatedTo = &endOfDay
	}
	return filter, true
}
