package repository

import (
	"fmt"
	"testing"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"gorm.io/gorm"
)

func createPayoutDebit(t *testing.T, repo *GormWalletRepository, vendorID, payoutID uint, amount string) models.WalletTransaction {
	t.Helper()
	balance := models.MustMoney("0")
	txn := models.WalletTransaction{
		VendorID:      vendorID,
		Type:          constants.WalletTxnTypeDebit,
		Category:      constants.WalletTxnCategoryPayout,
		Amount:        models.MustMoney(amount),
		BalanceBefore: balance,
		BalanceAfter:  balance,
		Currency:      "INR",
		ReferenceType: constants.WalletReferenceTypePayout,
		ReferenceID:   payoutID,
		Reference:     fmt.Sprintf("payout:%d:complete", payoutID),
	}
	if err := repo.CreateTransaction(&txn); err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	return txn
}

func TestWalletRepositoryGetOrCreateWallet(t *testing.T) {
	db := setupRepositoryTestDB(t, "wallet_repo_wallet")
	repo := NewWalletRepository(db)

	wallet, err := repo.GetByVendorID(7)
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if wallet != nil {
		t.Fatalf("missing wallet should be nil, got %+v", wallet)
	}

	if err := repo.Create(&models.VendorWallet{VendorID: 7, Currency: "INR"}); err != nil {
		t.Fatalf("create wallet failed: %v", err)
	}
	if err := repo.Create(&models.VendorWallet{VendorID: 7, Currency: "INR"}); err == nil {
		t.Fatalf("second wallet for same vendor should violate unique index")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.WithTx(tx).GetByVendorIDForUpdate(7)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("wallet not found in tx")
		}
		locked.TotalWithdrawn = models.MustMoney("1250.50")
		return repo.WithTx(tx).Update(locked)
	})
	if err != nil {
		t.Fatalf("update wallet in tx failed: %v", err)
	}

	reloaded, err := repo.GetByVendorID(7)
	if err != nil || reloaded == nil {
		t.Fatalf("reload wallet failed: %v", err)
	}
	if reloaded.TotalWithdrawn.String() != "1250.50" {
		t.Fatalf("total withdrawn want 1250.50 got %s", reloaded.TotalWithdrawn)
	}
}

func TestWalletRepositoryTransactionReferenceIsUnique(t *testing.T) {
	db := setupRepositoryTestDB(t, "wallet_repo_reference")
	repo := NewWalletRepository(db)

	first := createPayoutDebit(t, repo, 3, 11, "500")

	found, err := repo.GetTransactionByReference("payout:11:complete")
	if err != nil {
		t.Fatalf("get by reference failed: %v", err)
	}
	if found == nil || found.ID != first.ID {
		t.Fatalf("reference lookup want id %d got %+v", first.ID, found)
	}
	missing, err := repo.GetTransactionByReference("payout:99:complete")
	if err != nil || missing != nil {
		t.Fatalf("unknown reference should return nil, got %+v err=%v", missing, err)
	}

	dup := first
	dup.ID = 0
	if err := repo.CreateTransaction(&dup); err == nil {
		t.Fatalf("duplicate reference should be rejected")
	}
}

func TestWalletRepositoryListTransactions(t *testing.T) {
	db := setupRepositoryTestDB(t, "wallet_repo_list")
	repo := NewWalletRepository(db)

	createPayoutDebit(t, repo, 5, 1, "100")
	createPayoutDebit(t, repo, 5, 2, "200")
	createPayoutDebit(t, repo, 5, 3, "300")
	createPayoutDebit(t, repo, 6, 4, "999")

	page, total, err := repo.ListTransactions(WalletTransactionListFilter{VendorID: 5, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list transactions failed: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("want total 3 page 2 got total %d page %d", total, len(page))
	}
	if page[0].ReferenceID != 3 {
		t.Fatalf("newest transaction should come first, got reference id %d", page[0].ReferenceID)
	}

	all, err := repo.ListAllTransactions(5)
	if err != nil {
		t.Fatalf("list all transactions failed: %v", err)
	}
	if len(all) != 3 || all[0].ReferenceID != 1 || all[2].ReferenceID != 3 {
		t.Fatalf("replay order should be ascending, got %+v", all)
	}

	empty, err := repo.ListAllTransactions(0)
	if err != nil || len(empty) != 0 {
		t.Fatalf("vendor 0 should return empty slice, got %d err=%v", len(empty), err)
	}
}
