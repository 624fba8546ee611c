package service

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func seedCompletedPayout(t *testing.T, db *gorm.DB, vendorID uint, no int, sales, tds, net string, completedAt time.Time) {
	t.Helper()
	payout := &models.VendorPayout{
		PayoutNo:          fmt.Sprintf("VPTEST%04d", no),
		VendorID:          vendorID,
		Status:            constants.PayoutStatusCompleted,
		Currency:          "INR",
		PeriodStart:       "2024-01-01",
		PeriodEnd:         "2024-01-31",
		TotalSales:        models.MustMoney(sales),
		TDSAmount:         models.MustMoney(tds),
		NetAmount:         models.MustMoney(net),
		BankAccountNumber: "001234567890",
		PaymentReference:  fmt.Sprintf("UTR%d", no),
		CompletedAt:       &completedAt,
	}
	if err := db.Create(payout).Error; err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
}

func TestTDSSummaryBucketsByFinancialQuarter(t *testing.T) {
	db := openPayoutTestDB(t, "report_tds")
	vendor := seedPayoutVendor(t, db, "tds", nil)
	other := seedPayoutVendor(t, db, "tds_other", nil)

	seedCompletedPayout(t, db, vendor.ID, 1, "1000", "10", "900", time.Date(2024, 3, 31, 23, 0, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 2, "2000", "20", "1800", time.Date(2024, 4, 1, 0, 30, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 3, "3000", "30", "2700", time.Date(2024, 6, 30, 12, 0, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 4, "4000", "40", "3600", time.Date(2024, 8, 15, 12, 0, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 5, "5000", "50", "4500", time.Date(2025, 2, 10, 12, 0, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 6, "6000", "60", "5400", time.Date(2025, 4, 1, 0, 0, 0, 0, testIST))
	seedCompletedPayout(t, db, other.ID, 7, "7000", "70", "6300", time.Date(2024, 5, 1, 12, 0, 0, 0, testIST))

	svc := NewPayoutReportService(repository.NewPayoutRepository(db), testIST)
	summary, err := svc.TDSSummary(vendor.ID, 2024)
	if err != nil {
		t.Fatalf("tds summary failed: %v", err)
	}
	if summary.FinancialYear != "2024-25" {
		t.Fatalf("financial year label want 2024-25 got %s", summary.FinancialYear)
	}
	wantCounts := []int{2, 1, 0, 1}
	wantTDS := []string{"50.00", "40.00", "0.00", "50.00"}
	for i, quarter := range summary.Quarters {
		if quarter.PayoutCount != wantCounts[i] || quarter.TDSAmount.String() != wantTDS[i] {
			t.Fatalf("%s: want %d payouts tds %s got %d tds %s", quarter.Quarter, wantCounts[i], wantTDS[i], quarter.PayoutCount, quarter.TDSAmount)
		}
	}
	if summary.Quarters[3].From != "2025-01-01" || summary.Quarters[3].To != "2025-03-31" {
		t.Fatalf("unexpected Q4 range %s - %s", summary.Quarters[3].From, summary.Quarters[3].To)
	}
	if summary.TotalTDS.String() != "140.00" || summary.TotalSales.String() != "14000.00" {
		t.Fatalf("unexpected totals tds %s sales %s", summary.TotalTDS, summary.TotalSales)
	}

	if _, err := svc.TDSSummary(vendor.ID, 1999); !errors.Is(err, ErrFinancialYearInvalid) {
		t.Fatalf("want ErrFinancialYearInvalid got %v", err)
	}
}

func TestFinancialQuarterIndex(t *testing.T) {
	cases := map[time.Month]int{
		time.April: 0, time.June: 0, time.July: 1, time.September: 1,
		time.October: 2, time.December: 2, time.January: 3, time.March: 3,
	}
	for month, want := range cases {
		if got := financialQuarterIndex(time.Date(2024, month, 15, 0, 0, 0, 0, time.UTC)); got != want {
			t.Fatalf("%s: want %d got %d", month, want, got)
		}
	}
	if got := CurrentFinancialYear(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)); got != 2024 {
		t.Fatalf("march belongs to previous financial year, got %d", got)
	}
}

func TestRevenueSummary(t *testing.T) {
	db := openPayoutTestDB(t, "report_revenue")
	vendor := seedPayoutVendor(t, db, "revenue", nil)
	seedCompletedPayout(t, db, vendor.ID, 1, "1000", "10", "900", time.Date(2024, 1, 10, 12, 0, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 2, "2000", "20", "1800", time.Date(2024, 1, 31, 23, 59, 0, 0, testIST))
	seedCompletedPayout(t, db, vendor.ID, 3, "3000", "30", "2700", time.Date(2024, 2, 1, 0, 0, 0, 0, testIST))

	svc := NewPayoutReportService(repository.NewPayoutRepository(db), testIST)
	summary, err := svc.RevenueSummary("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("revenue summary failed: %v", err)
	}
	if summary.PayoutCount != 2 || summary.TotalSales.String() != "3000.00" || summary.NetPaid.String() != "2700.00" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := svc.RevenueSummary("2024-02-01", "2024-01-01"); !errors.Is(err, ErrPeriodInvalid) {
		t.Fatalf("want ErrPeriodInvalid got %v", err)
	}
}

func TestExportPayoutsWritesOneRowPerPayout(t *testing.T) {
	db := openPayoutTestDB(t, "report_export")
	vendor := seedPayoutVendor(t, db, "export", nil)
	for i := 1; i <= 3; i++ {
		seedCompletedPayout(t, db, vendor.ID, i, "1000", "10", "900", time.Date(2024, 1, 10+i, 12, 0, 0, 0, testIST))
	}

	svc := NewPayoutExportService(repository.NewPayoutRepository(db), testIST)
	export, err := svc.Export(repository.PayoutListFilter{VendorID: vendor.ID})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if export.Rows != 3 || export.Total != 3 || export.Truncated() {
		t.Fatalf("want 3 exported payouts got rows=%d total=%d", export.Rows, export.Total)
	}

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	if err != nil {
		t.Fatalf("open workbook failed: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(payoutExportSheet)
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("want header + 3 rows got %d", len(rows))
	}
	if rows[0][0] != "Payout No" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][16] != "********7890" {
		t.Fatalf("account number should be masked, got %s", rows[1][16])
	}
}

func TestExportPayoutsFlagsTruncation(t *testing.T) {
	db := openPayoutTestDB(t, "report_export_truncated")
	vendor := seedPayoutVendor(t, db, "export-limit", nil)
	for i := 1; i <= 3; i++ {
		seedCompletedPayout(t, db, vendor.ID, i, "1000", "10", "900", time.Date(2024, 1, 10+i, 12, 0, 0, 0, testIST))
	}

	svc := NewPayoutExportService(repository.NewPayoutRepository(db), testIST)
	svc.maxRows = 2
	export, err := svc.Export(repository.PayoutListFilter{VendorID: vendor.ID})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if export.Rows != 2 || export.Total != 3 {
		t.Fatalf("want rows=2 total=3 got rows=%d total=%d", export.Rows, export.Total)
	}
	if !export.Truncated() {
		t.Fatalf("export over the row limit should report truncation")
	}

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	if err != nil {
		t.Fatalf("open workbook failed: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(payoutExportSheet)
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows got %d", len(rows))
	}
}
