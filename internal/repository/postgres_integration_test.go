//go:build integration
// +build integration

package repository

import (
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AllModels()
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := db.AutoMigrate(cleanupModels...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresPayoutClaimConflictIsTranslated(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPayoutRepository(db)

	claim := models.PayoutClaim{VendorID: 1, SourceType: constants.PayoutClaimSourceOrder, SourceID: 42, PayoutID: 1}
	if err := repo.CreateClaims([]models.PayoutClaim{claim}); err != nil {
		t.Fatalf("create claim failed: %v", err)
	}
	claim.ID = 0
	claim.PayoutID = 2
	err := repo.CreateClaims([]models.PayoutClaim{claim})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate claim want gorm.ErrDuplicatedKey got %v", err)
	}
}

func TestPostgresGuardedTransitionSingleWinner(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPayoutRepository(db)

	payout := &models.VendorPayout{
		PayoutNo:    "VP-PG-1",
		VendorID:    1,
		Status:      constants.PayoutStatusProcessing,
		Currency:    "INR",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
		NetAmount:   models.MustMoney("750.00"),
	}
	if err := repo.Create(payout); err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Transaction(func(tx *gorm.DB) error {
				txRepo := repo.WithTx(tx)
				locked, err := txRepo.GetByIDForUpdate(payout.ID)
				if err != nil || locked == nil {
					return err
				}
				affected, err := txRepo.UpdateWithStatus(payout.ID, []string{constants.PayoutStatusProcessing}, map[string]interface{}{
					"status":       constants.PayoutStatusCompleted,
					"completed_at": time.Now(),
				})
				if err != nil {
					return err
				}
				if affected == 1 {
					mu.Lock()
					winners++
					mu.Unlock()
				}
				return nil
			})
			if err != nil {
				t.Errorf("transition tx failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("exactly one transition should win, got %d", winners)
	}
	completed, err := repo.ListCompleted(CompletedPayoutFilter{VendorID: 1})
	if err != nil {
		t.Fatalf("list completed failed: %v", err)
	}
	if len(completed) != 1 || completed[0].NetAmount.String() != "750.00" {
		t.Fatalf("unexpected completed payouts: %+v", completed)
	}
}
