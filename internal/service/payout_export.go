package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	payoutExportSheet   = "Payouts"
	payoutExportMaxRows = 10000
)

var payoutExportHeaders = []string{
	"Payout No", "Vendor ID", "Status", "Period Start", "Period End",
	"Total Sales", "Commission Rate", "Platform Commission", "Commission GST",
	"TDS Amount", "Return Shipping Fees", "Adjustment", "Net Amount",
	"Orders", "Scheduled Date", "Account Holder", "Account Number", "IFSC",
	"Payment Reference", "Completed At",
}

// PayoutExportService 结算单 Excel 导出
type PayoutExportService struct {
	payoutRepo repository.PayoutRepository
	location   *time.Location
	maxRows    int
}

// PayoutExport 导出结果，Total 为过滤条件命中的总数
type PayoutExport struct {
	Content []byte
	Rows    int
	Total   int64
}

// Truncated 命中数超过单次导出上限
func (e *PayoutExport) Truncated() bool {
	return e != nil && e.Total > int64(e.Rows)
}

// NewPayoutExportService 创建导出服务
func NewPayoutExportService(payoutRepo repository.PayoutRepository, loc *time.Location) *PayoutExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayoutExportService{payoutRepo: payoutRepo, location: loc, maxRows: payoutExportMaxRows}
}

// Export 按过滤条件导出结算单，每个结算单一行，超过上限时只导出前 maxRows 条
func (s *PayoutExportService) Export(filter repository.PayoutListFilter) (*PayoutExport, error) {
	filter.Page = 1
	filter.PageSize = s.maxRows
	payouts, total, err := s.payoutRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutExportFailed, err)
	}
	if total > int64(len(payouts)) {
		logger.Warnw("payout_export_truncated", "total", total, "exported", len(payouts), "limit", s.maxRows)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	index, err := f.NewSheet(payoutExportSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutExportFailed, err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutExportFailed, err)
	}
	for i, header := range payoutExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(payoutExportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPayoutExportFailed, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(payoutExportHeaders), 1)
	_ = f.SetCellStyle(payoutExportSheet, "A1", lastHeader, headerStyle)

	for i, payout := range payouts {
		row := i + 2
		if err := f.SetSheetRow(payoutExportSheet, fmt.Sprintf("A%d", row), s.exportRow(payout)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPayoutExportFailed, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutExportFailed, err)
	}
	return &PayoutExport{Content: bytes.Clone(buf.Bytes()), Rows: len(payouts), Total: total}, nil
}

func (s *PayoutExportService) exportRow(payout models.VendorPayout) *[]interface{} {
	scheduled := ""
	if payout.ScheduledPayoutDate != nil {
		scheduled = *payout.ScheduledPayoutDate
	}
	completedAt := ""
	if payout.CompletedAt != nil {
		completedAt = payout.CompletedAt.In(s.location).Format("2006-01-02 15:04:05")
	}
	row := []interface{}{
		payout.PayoutNo,
		payout.VendorID,
		payout.Status,
		payout.PeriodStart,
		payout.PeriodEnd,
		payout.TotalSales.InexactFloat64(),
		payout.CommissionRate.InexactFloat64(),
		payout.PlatformCommission.InexactFloat64(),
		payout.CommissionGST.InexactFloat64(),
		payout.TDSAmount.InexactFloat64(),
		payout.ReturnShippingFees.InexactFloat64(),
		payout.AdjustmentAmount.InexactFloat64(),
		payout.NetAmount.InexactFloat64(),
		payout.TotalOrders,
		scheduled,
		payout.BankAccountHolderName,
		maskAccountNumber(payout.BankAccountNumber),
		payout.BankIFSCCode,
		payout.PaymentReference,
		completedAt,
	}
	return &row
}

// maskAccountNumber 仅保留后 4 位
func maskAccountNumber(number string) string {
	runes := []rune(number)
	if len(runes) <= 4 {
		return number
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < len(runes)-4 {
			masked[i] = '*'
			continue
		}
		masked[i] = runes[i]
	}
	return string(masked)
}
