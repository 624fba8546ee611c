package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendorWalletService 供应商钱包账本，只由结算单生命周期写入
type VendorWalletService struct {
	walletRepo repository.WalletRepository
	currency   string
}

// WalletReconciliation 流水重放与钱包投影的对账结果
type WalletReconciliation struct {
	VendorID               uint         `json:"vendor_id"`
	WalletExists           bool         `json:"wallet_exists"`
	TransactionCount       int          `json:"transaction_count"`
	LedgerTotalWithdrawn   models.Money `json:"ledger_total_withdrawn"`
	WalletTotalWithdrawn   models.Money `json:"wallet_total_withdrawn"`
	WithdrawnDrift         models.Money `json:"withdrawn_drift"`
	LedgerLastPayoutAmount models.Money `json:"ledger_last_payout_amount"`
	WalletLastPayoutAmount models.Money `json:"wallet_last_payout_amount"`
	Consistent             bool         `json:"consistent"`
}

// NewVendorWalletService 创建供应商钱包服务
func NewVendorWalletService(walletRepo repository.WalletRepository, currency string) *VendorWalletService {
	return &VendorWalletService{
		walletRepo: walletRepo,
		currency:   normalizeCurrency(currency),
	}
}

// GetWallet 获取钱包，不存在时返回零值快照（不落库）
func (s *VendorWalletService) GetWallet(vendorID uint) (*models.VendorWallet, error) {
	wallet, err := s.walletRepo.GetByVendorID(vendorID)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}
	return &models.VendorWallet{
		VendorID:         vendorID,
		Currency:         s.currency,
		AvailableBalance: models.NewMoneyFromDecimal(decimal.Zero),
		PendingBalance:   models.NewMoneyFromDecimal(decimal.Zero),
		TotalEarned:      models.NewMoneyFromDecimal(decimal.Zero),
		TotalWithdrawn:   models.NewMoneyFromDecimal(decimal.Zero),
		LastPayoutAmount: models.NewMoneyFromDecimal(decimal.Zero),
	}, nil
}

// ListTransactions 分页查询钱包流水
func (s *VendorWalletService) ListTransactions(filter repository.WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	return s.walletRepo.ListTransactions(filter)
}

// ApplyPayoutCompletionInTx 在事务内记录结算付款：累计已付增加 net_amount，
// 可用余额不变，流水 balance_before 与 balance_after 均为可用余额。
// 同一结算单的流水引用唯一，流水已存在时返回 ErrPayoutLedgerConflict，结算单状态由调用方判断。
func (s *VendorWalletService) ApplyPayoutCompletionInTx(tx *gorm.DB, payout *models.VendorPayout, now time.Time) (*models.VendorWallet, *models.WalletTransaction, error) {
	if tx == nil || payout == nil || payout.ID == 0 {
		return nil, nil, ErrWalletUpdateFailed
	}
	repo := s.walletRepo.WithTx(tx)
	reference := buildPayoutWalletReference(payout.ID, "complete")

	exists, err := repo.GetTransactionByReference(reference)
	if err != nil {
		return nil, nil, err
	}
	if exists != nil {
		return nil, nil, ErrPayoutLedgerConflict
	}

	wallet, err := s.ensureWalletForUpdate(repo, payout.VendorID, payout.Currency, now)
	if err != nil {
		return nil, nil, err
	}

	amount := payout.NetAmount.Decimal.Round(2)
	balance := wallet.AvailableBalance.Decimal.Round(2)
	wallet.TotalWithdrawn = models.NewMoneyFromDecimal(wallet.TotalWithdrawn.Decimal.Add(amount))
	wallet.LastPayoutAmount = models.NewMoneyFromDecimal(amount)
	lastPayoutAt := now
	wallet.LastPayoutAt = &lastPayoutAt
	wallet.UpdatedAt = now
	if err := repo.Update(wallet); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrWalletUpdateFailed, err)
	}

	txn := &models.WalletTransaction{
		VendorID:      payout.VendorID,
		Type:          constants.WalletTxnTypeDebit,
		Category:      constants.WalletTxnCategoryPayout,
		Amount:        models.NewMoneyFromDecimal(amount),
		BalanceBefore: models.NewMoneyFromDecimal(balance),
		BalanceAfter:  models.NewMoneyFromDecimal(balance),
		Currency:      wallet.Currency,
		ReferenceType: constants.WalletReferenceTypePayout,
		ReferenceID:   payout.ID,
		Reference:     reference,
		Description:   fmt.Sprintf("Payout %s completed", payout.PayoutNo),
		Metadata: models.JSON{
			"payout_no":         payout.PayoutNo,
			"payment_method":    payout.PaymentMethod,
			"payment_reference": payout.PaymentReference,
			"period_start":      payout.PeriodStart,
			"period_end":        payout.PeriodEnd,
		},
		CreatedAt: now,
	}
	if err := repo.CreateTransaction(txn); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrWalletTransactionCreateFailed, err)
	}
	return wallet, txn, nil
}

// Reconcile 重放流水核对钱包累计已付，只读
func (s *VendorWalletService) Reconcile(vendorID uint) (*WalletReconciliation, error) {
	if vendorID == 0 {
		return nil, ErrVendorNotFound
	}
	wallet, err := s.walletRepo.GetByVendorID(vendorID)
	if err != nil {
		return nil, err
	}
	txns, err := s.walletRepo.ListAllTransactions(vendorID)
	if err != nil {
		return nil, err
	}

	ledgerWithdrawn := decimal.Zero
	ledgerLast := decimal.Zero
	for _, txn := range txns {
		if txn.Category != constants.WalletTxnCategoryPayout || txn.Type != constants.WalletTxnTypeDebit {
			continue
		}
		ledgerWithdrawn = ledgerWithdrawn.Add(txn.Amount.Decimal)
		ledgerLast = txn.Amount.Decimal
	}

	walletWithdrawn := decimal.Zero
	walletLast := decimal.Zero
	if wallet != nil {
		walletWithdrawn = wallet.TotalWithdrawn.Decimal
		walletLast = wallet.LastPayoutAmount.Decimal
	}
	drift := walletWithdrawn.Sub(ledgerWithdrawn)

	return &WalletReconciliation{
		VendorID:               vendorID,
		WalletExists:           wallet != nil,
		TransactionCount:       len(txns),
		LedgerTotalWithdrawn:   models.NewMoneyFromDecimal(ledgerWithdrawn),
		WalletTotalWithdrawn:   models.NewMoneyFromDecimal(walletWithdrawn),
		WithdrawnDrift:         models.NewMoneyFromDecimal(drift),
		LedgerLastPayoutAmount: models.NewMoneyFromDecimal(ledgerLast),
		WalletLastPayoutAmount: models.NewMoneyFromDecimal(walletLast),
		Consistent:             drift.Round(2).IsZero() && ledgerLast.Round(2).Equal(walletLast.Round(2)),
	}, nil
}

func (s *VendorWalletService) ensureWalletForUpdate(repo repository.WalletRepository, vendorID uint, currency string, now time.Time) (*models.VendorWallet, error) {
	wallet, err := repo.GetByVendorIDForUpdate(vendorID)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}
	if strings.TrimSpace(currency) == "" {
		currency = s.currency
	}
	wallet = &models.VendorWallet{
		VendorID:         vendorID,
		Currency:         normalizeCurrency(currency),
		AvailableBalance: models.NewMoneyFromDecimal(decimal.Zero),
		PendingBalance:   models.NewMoneyFromDecimal(decimal.Zero),
		TotalEarned:      models.NewMoneyFromDecimal(decimal.Zero),
		TotalWithdrawn:   models.NewMoneyFromDecimal(decimal.Zero),
		LastPayoutAmount: models.NewMoneyFromDecimal(decimal.Zero),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := repo.Create(wallet); err != nil {
		created, queryErr := repo.GetByVendorIDForUpdate(vendorID)
		if queryErr == nil && created != nil {
			return created, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrWalletUpdateFailed, err)
	}
	return wallet, nil
}

func buildPayoutWalletReference(payoutID uint, action string) string {
	return fmt.Sprintf("payout:%d:%s", payoutID, action)
}

func normalizeCurrency(currency string) string {
	normalized := strings.ToUpper(strings.TrimSpace(currency))
	if normalized == "" {
		return constants.DefaultPayoutCurrency
	}
	return normalized
}
