package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"gorm.io/gorm"
)

func TestPayoutRepositoryUpdateWithStatus(t *testing.T) {
	db := setupRepositoryTestDB(t, "payout_repo_status")
	repo := NewPayoutRepository(db)

	payout := &models.VendorPayout{
		PayoutNo:    "VP-1",
		VendorID:    1,
		Status:      constants.PayoutStatusPending,
		Currency:    "INR",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
		NetAmount:   models.MustMoney("100.00"),
	}
	if err := repo.Create(payout); err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	affected, err := repo.UpdateWithStatus(payout.ID, []string{constants.PayoutStatusProcessing}, map[string]interface{}{
		"status": constants.PayoutStatusCompleted,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("guarded update should not touch pending payout")
	}

	affected, err = repo.UpdateWithStatus(payout.ID, []string{constants.PayoutStatusPending}, map[string]interface{}{
		"status": constants.PayoutStatusProcessing,
	})
	if err != nil || affected != 1 {
		t.Fatalf("expected 1 affected row, got %d err=%v", affected, err)
	}
	reloaded, err := repo.GetByIDForUpdate(payout.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload payout failed: %v", err)
	}
	if reloaded.Status != constants.PayoutStatusProcessing {
		t.Fatalf("status want processing got %s", reloaded.Status)
	}
}

func TestPayoutRepositoryClaimsAreUniquePerVendorSource(t *testing.T) {
	db := setupRepositoryTestDB(t, "payout_repo_claims")
	repo := NewPayoutRepository(db)

	claims := []models.PayoutClaim{
		{VendorID: 1, SourceType: constants.PayoutClaimSourceOrder, SourceID: 10, PayoutID: 1},
		{VendorID: 1, SourceType: constants.PayoutClaimSourceOrder, SourceID: 11, PayoutID: 1},
		{VendorID: 1, SourceType: constants.PayoutClaimSourceReturn, SourceID: 10, PayoutID: 1},
	}
	if err := repo.CreateClaims(claims); err != nil {
		t.Fatalf("create claims failed: %v", err)
	}

	dup := []models.PayoutClaim{{VendorID: 1, SourceType: constants.PayoutClaimSourceOrder, SourceID: 11, PayoutID: 2}}
	if err := repo.CreateClaims(dup); err == nil {
		t.Fatalf("duplicate claim should violate unique index")
	}

	ids, err := repo.ListClaimedSourceIDs(1, constants.PayoutClaimSourceOrder, []uint{9, 10, 11})
	if err != nil {
		t.Fatalf("list claimed failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 11 {
		t.Fatalf("unexpected claimed ids: %v", ids)
	}

	released, err := repo.DeleteClaimsByPayoutID(1)
	if err != nil {
		t.Fatalf("release claims failed: %v", err)
	}
	if released != 3 {
		t.Fatalf("released want 3 got %d", released)
	}
	if err := repo.CreateClaims(dup); err != nil {
		t.Fatalf("claim should be available after release: %v", err)
	}
}

func TestPayoutRepositoryListCompletedFiltersInQuery(t *testing.T) {
	db := setupRepositoryTestDB(t, "payout_repo_completed")
	repo := NewPayoutRepository(db)
	loc := time.FixedZone("IST", 5*3600+1800)

	completedAts := []time.Time{
		time.Date(2023, 6, 1, 12, 0, 0, 0, loc),   // 远早于窗口
		time.Date(2024, 3, 31, 23, 30, 0, 0, loc), // 放宽范围内，但早于窗口
		time.Date(2024, 4, 1, 0, 30, 0, 0, loc),   // 窗口内
		time.Date(2024, 6, 30, 23, 59, 0, 0, loc), // 窗口内
		time.Date(2024, 7, 1, 0, 0, 0, 0, loc),    // 右边界，不含
		time.Date(2025, 1, 15, 12, 0, 0, 0, loc),  // 远晚于窗口
	}
	for i := range completedAts {
		payout := &models.VendorPayout{
			PayoutNo:    fmt.Sprintf("VP-C%d", i),
			VendorID:    1,
			Status:      constants.PayoutStatusCompleted,
			Currency:    "INR",
			PeriodStart: "2024-01-01",
			PeriodEnd:   "2024-01-31",
			CompletedAt: &completedAts[i],
		}
		if err := repo.Create(payout); err != nil {
			t.Fatalf("create payout failed: %v", err)
		}
	}

	var loaded int64
	if err := db.Callback().Query().After("gorm:query").Register("test:count_completed_rows", func(tx *gorm.DB) {
		if tx.Statement.Table == "vendor_payouts" {
			loaded += tx.RowsAffected
		}
	}); err != nil {
		t.Fatalf("register callback failed: %v", err)
	}

	from := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, loc)
	payouts, err := repo.ListCompleted(CompletedPayoutFilter{VendorID: 1, CompletedFrom: &from, CompletedTo: &to})
	if err != nil {
		t.Fatalf("list completed failed: %v", err)
	}
	if len(payouts) != 2 || payouts[0].PayoutNo != "VP-C2" || payouts[1].PayoutNo != "VP-C3" {
		t.Fatalf("want VP-C2 and VP-C3 got %+v", payouts)
	}
	if loaded > 4 {
		t.Fatalf("rows outside the widened window must not be loaded, loaded %d", loaded)
	}

	loaded = 0
	payouts, err = repo.ListCompleted(CompletedPayoutFilter{VendorID: 1, CompletedFrom: &to})
	if err != nil {
		t.Fatalf("list completed failed: %v", err)
	}
	if len(payouts) != 2 || payouts[0].PayoutNo != "VP-C4" || payouts[1].PayoutNo != "VP-C5" {
		t.Fatalf("open-ended window want VP-C4 and VP-C5 got %+v", payouts)
	}
	if loaded > 3 {
		t.Fatalf("open-ended window loaded %d rows", loaded)
	}
}

func TestPayoutRepositoryKeepsRatePrecision(t *testing.T) {
	db := setupRepositoryTestDB(t, "payout_repo_rate")
	repo := NewPayoutRepository(db)

	payout := &models.VendorPayout{
		PayoutNo:          "VP-R1",
		VendorID:          1,
		Status:            constants.PayoutStatusPending,
		Currency:          "INR",
		PeriodStart:       "2024-01-01",
		PeriodEnd:         "2024-01-31",
		CommissionRate:    models.MustRate("8.125"),
		CommissionGSTRate: models.MustRate("18"),
		TDSRate:           models.MustRate("0.1"),
	}
	if err := repo.Create(payout); err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	reloaded, err := repo.GetByID(payout.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload payout failed: %v", err)
	}
	if reloaded.CommissionRate.String() != "8.125" {
		t.Fatalf("commission rate want 8.125 got %s", reloaded.CommissionRate)
	}
	if reloaded.TDSRate.String() != "0.1" || reloaded.CommissionGSTRate.String() != "18" {
		t.Fatalf("unexpected rates tds=%s gst=%s", reloaded.TDSRate, reloaded.CommissionGSTRate)
	}
}
