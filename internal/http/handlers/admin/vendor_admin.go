package admin

import (
	"errors"
	"strings"

	handlershared "github.com/vendorhub/payout/internal/http/handlers/shared"
	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"
	"github.com/vendorhub/payout/internal/service"

	"github.com/gin-gonic/gin"
)

// VendorBankAccountRequest 收款账户
type VendorBankAccountRequest struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	BankName          string `json:"bank_name"`
}

// CreateVendorRequest 创建供应商请求
type CreateVendorRequest struct {
	Name                 string                   `json:"name" binding:"required"`
	Email                string                   `json:"email"`
	Phone                string                   `json:"phone"`
	Status               string                   `json:"status"`
	CommissionPercentage *float64                 `json:"commission_percentage"`
	BankAccount          VendorBankAccountRequest `json:"bank_account"`
}

// UpdateVendorCommissionRequest 修改佣金比例，null 表示恢复平台默认
type UpdateVendorCommissionRequest struct {
	CommissionPercentage *float64 `json:"commission_percentage"`
}

func (r VendorBankAccountRequest) toModel() models.VendorBankAccount {
	return models.VendorBankAccount{
		AccountHolderName: r.AccountHolderName,
		AccountNumber:     r.AccountNumber,
		IFSCCode:          r.IFSCCode,
		BankName:          r.BankName,
	}
}

// CreateVendor 创建供应商
func (h *Handler) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	vendor, err := h.VendorService.Create(service.CreateVendorInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Status:               req.Status,
		CommissionPercentage: req.CommissionPercentage,
		BankAccount:          req.BankAccount.toModel(),
	})
	if err != nil {
		respondVendorError(c, err, "error.vendor_create_failed")
		return
	}
	response.Success(c, vendor)
}

// ListVendors 分页查询供应商
func (h *Handler) ListVendors(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	vendors, total, err := h.VendorService.List(repository.VendorListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, vendors, handlershared.BuildPagination(page, pageSize, total))
}

// GetVendor 供应商详情
func (h *Handler) GetVendor(c *gin.Context) {
	vendorID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
		return
	}
	vendor, err := h.VendorService.Get(vendorID)
	if err != nil {
		respondVendorError(c, err, "error.internal")
		return
	}
	response.Success(c, vendor)
}

// UpdateVendorCommission 修改佣金比例，仅影响之后的试算
func (h *Handler) UpdateVendorCommission(c *gin.Context) {
	vendorID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
		return
	}
	var req UpdateVendorCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	vendor, err := h.VendorService.UpdateCommission(vendorID, req.CommissionPercentage)
	if err != nil {
		respondVendorError(c, err, "error.vendor_update_failed")
		return
	}
	response.Success(c, vendor)
}

// UpdateVendorBankAccount 修改收款账户，已创建的结算单保留快照
func (h *Handler) UpdateVendorBankAccount(c *gin.Context) {
	vendorID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
		return
	}
	var req VendorBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	vendor, err := h.VendorService.UpdateBankAccount(vendorID, req.toModel())
	if err != nil {
		respondVendorError(c, err, "error.vendor_update_failed")
		return
	}
	response.Success(c, vendor)
}

func respondVendorError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		respondError(c, response.CodeNotFound, "error.vendor_not_found", nil)
	case errors.Is(err, service.ErrVendorInvalid):
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
