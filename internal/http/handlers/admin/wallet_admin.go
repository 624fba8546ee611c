package admin

import (
	"strings"

	handlershared "github.com/vendorhub/payout/internal/http/handlers/shared"
	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetVendorWallet 供应商钱包，未付款过时返回零值快照
func (h *Handler) GetVendorWallet(c *gin.Context) {
	vendorID, ok := h.requireVendor(c)
	if !ok {
		return
	}
	wallet, err := h.VendorWalletService.GetWallet(vendorID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}
	response.Success(c, wallet)
}

// GetVendorWalletTransactions 供应商钱包流水
func (h *Handler) GetVendorWalletTransactions(c *gin.Context) {
	vendorID, ok := h.requireVendor(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	transactions, total, err := h.VendorWalletService.ListTransactions(repository.WalletTransactionListFilter{
		Page:     page,
		PageSize: pageSize,
		VendorID: vendorID,
		Type:     strings.TrimSpace(c.Query("type")),
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, transactions, handlershared.BuildPagination(page, pageSize, total))
}

// ReconcileVendorWallet 流水与钱包对账（只读）
func (h *Handler) ReconcileVendorWallet(c *gin.Context) {
	vendorID, ok := h.requireVendor(c)
	if !ok {
		return
	}
	result, err := h.VendorWalletService.Reconcile(vendorID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}
	if !result.Consistent {
		requestLog(c).Warnw("vendor_wallet_drift_detected",
			"vendor_id", vendorID,
			"ledger_total_withdrawn", result.LedgerTotalWithdrawn.String(),
			"wallet_total_withdrawn", result.WalletTotalWithdrawn.String(),
		)
	}
	response.Success(c, result)
}

func (h *Handler) requireVendor(c *gin.Context) (uint, bool) {
	vendorID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.vendor_id_invalid", nil)
		return 0, false
	}
	if _, err := h.VendorService.Get(vendorID); err != nil {
		respondVendorError(c, err, "error.wallet_fetch_failed")
		return 0, false
	}
	return vendorID, true
}
