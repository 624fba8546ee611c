package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/queue"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutService 结算单服务：试算、创建与状态流转
type PayoutService struct {
	payoutRepo     repository.PayoutRepository
	vendorRepo     repository.VendorRepository
	calculator     *PayoutCalculationService
	walletService  *VendorWalletService
	settingService *SettingService
	queueClient    *queue.Client
	notifier       PayoutNotifier
	policyFallback PayoutPolicyConfig
	location       *time.Location
	currency       string
	now            func() time.Time
}

// PayoutServiceOptions 结算单服务依赖
type PayoutServiceOptions struct {
	PayoutRepo     repository.PayoutRepository
	VendorRepo     repository.VendorRepository
	Calculator     *PayoutCalculationService
	WalletService  *VendorWalletService
	SettingService *SettingService
	QueueClient    *queue.Client
	Notifier       PayoutNotifier
	PolicyFallback PayoutPolicyConfig
	Location       *time.Location
	Currency       string
}

// CalculatePayoutInput 试算输入
type CalculatePayoutInput struct {
	VendorID    uint
	PeriodStart string
	PeriodEnd   string
}

// CreatePayoutInput 创建结算单输入
type CreatePayoutInput struct {
	VendorID         uint
	PeriodStart      string
	PeriodEnd        string
	AdjustmentAmount models.Money
	AdjustmentReason string
	AdminNotes       string
	AdminID          uint
}

// PayoutAdjustment 人工调整（负数为扣款）
type PayoutAdjustment struct {
	Amount     decimal.Decimal
	Reason     string
	AdminNotes string
	AdminID    uint
}

// CompletePayoutInput 付款完成输入
type CompletePayoutInput struct {
	PaymentMethod    string
	PaymentReference string
	PaymentGateway   string
	PaymentResponse  models.JSON
}

// NewPayoutService 创建结算单服务
func NewPayoutService(opts PayoutServiceOptions) *PayoutService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	fallback := opts.PolicyFallback
	if fallback == (PayoutPolicyConfig{}) {
		fallback = PayoutPolicyDefault()
	}
	return &PayoutService{
		payoutRepo:     opts.PayoutRepo,
		vendorRepo:     opts.VendorRepo,
		calculator:     opts.Calculator,
		walletService:  opts.WalletService,
		settingService: opts.SettingService,
		queueClient:    opts.QueueClient,
		notifier:       opts.Notifier,
		policyFallback: fallback,
		location:       loc,
		currency:       normalizeCurrency(opts.Currency),
		now:            time.Now,
	}
}

// Location 结算时区
func (s *PayoutService) Location() *time.Location {
	return s.location
}

// ResolvePolicy 读取当前结算策略，settings 读取失败时回退配置默认值
func (s *PayoutService) ResolvePolicy() PayoutPolicyConfig {
	policy, err := s.settingService.GetPayoutPolicy(s.policyFallback)
	if err != nil {
		logger.Warnw("payout_policy_load_failed", "error", err)
		return s.policyFallback
	}
	return policy
}

// Calculate 试算结算，不落库
func (s *PayoutService) Calculate(ctx context.Context, input CalculatePayoutInput) (*PayoutCalculationResult, error) {
	vendor, period, err := s.loadVendorAndPeriod(input.VendorID, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, err
	}
	return s.calculator.Calculate(ctx, vendor, period, s.ResolvePolicy())
}

// Create 试算并创建待处理结算单
func (s *PayoutService) Create(ctx context.Context, input CreatePayoutInput) (*models.VendorPayout, error) {
	vendor, period, err := s.loadVendorAndPeriod(input.VendorID, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, err
	}
	calc, err := s.calculator.Calculate(ctx, vendor, period, s.ResolvePolicy())
	if err != nil {
		return nil, err
	}
	return s.CreateFromCalculation(ctx, vendor, calc, PayoutAdjustment{
		Amount:     input.AdjustmentAmount.Decimal,
		Reason:     input.AdjustmentReason,
		AdminNotes: input.AdminNotes,
		AdminID:    input.AdminID,
	})
}

// CreateFromCalculation 以试算结果创建 pending 结算单：net_amount = 试算净额 + 调整额，
// 快照收款账户并占用覆盖的订单与退货单，全部在同一事务内完成。
func (s *PayoutService) CreateFromCalculation(ctx context.Context, vendor *models.Vendor, calc *PayoutCalculationResult, adjustment PayoutAdjustment) (*models.VendorPayout, error) {
	if vendor == nil || vendor.ID == 0 {
		return nil, ErrVendorNotFound
	}
	if calc == nil || len(calc.OrderIDs) == 0 {
		return nil, ErrPayoutNoDeliveredOrders
	}
	if calc.VendorID != 0 && calc.VendorID != vendor.ID {
		return nil, ErrVendorInvalid
	}

	net := calc.NetAmount.Add(adjustment.Amount)
	if net.Round(2).LessThanOrEqual(decimal.Zero) {
		return nil, ErrPayoutAmountInvalid
	}

	now := s.now()
	payout := &models.VendorPayout{
		PayoutNo:               generatePayoutNo(now),
		VendorID:               vendor.ID,
		Status:                 constants.PayoutStatusPending,
		Currency:               s.currency,
		PeriodStart:            calc.PeriodStart,
		PeriodEnd:              calc.PeriodEnd,
		TotalSales:             models.NewMoneyFromDecimal(calc.TotalSales),
		CommissionRate:         models.NewRate(calc.CommissionRate),
		PlatformCommission:     models.NewMoneyFromDecimal(calc.PlatformCommission),
		CommissionGSTRate:      models.NewRate(calc.CommissionGSTRate),
		CommissionGST:          models.NewMoneyFromDecimal(calc.CommissionGST),
		TotalCommissionWithGST: models.NewMoneyFromDecimal(calc.TotalCommissionWithGST),
		TDSRate:                models.NewRate(calc.TDSRate),
		TDSAmount:              models.NewMoneyFromDecimal(calc.TDSAmount),
		ReturnShippingFees:     models.NewMoneyFromDecimal(calc.ReturnShippingFees),
		AdjustmentAmount:       models.NewMoneyFromDecimal(adjustment.Amount),
		AdjustmentReason:       strings.TrimSpace(adjustment.Reason),
		NetAmount:              models.NewMoneyFromDecimal(net),
		TotalOrders:            calc.TotalOrders,
		OrderIDs:               models.NewIDList(calc.OrderIDs),
		ReturnIDs:              models.NewIDList(calc.ReturnIDs),
		EarliestDeliveryDate:   calc.EarliestDeliveryDate,
		LatestDeliveryDate:     calc.LatestDeliveryDate,
		ScheduledPayoutDate:    formatOptionalDate(calc.ScheduledPayoutDate),
		BankAccountHolderName:  vendor.BankAccount.AccountHolderName,
		BankAccountNumber:      vendor.BankAccount.AccountNumber,
		BankIFSCCode:           vendor.BankAccount.IFSCCode,
		BankName:               vendor.BankAccount.BankName,
		AdminNotes:             strings.TrimSpace(adjustment.AdminNotes),
		CreatedBy:              adjustment.AdminID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	err := s.payoutRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.payoutRepo.WithTx(tx)
		claimed, err := repo.ListClaimedSourceIDs(vendor.ID, constants.PayoutClaimSourceOrder, payout.OrderIDs)
		if err != nil {
			return err
		}
		if len(claimed) > 0 {
			return fmt.Errorf("%w: orders %v", ErrPayoutOrdersClaimed, claimed)
		}
		if err := repo.Create(payout); err != nil {
			return err
		}
		claims := make([]models.PayoutClaim, 0, len(payout.OrderIDs)+len(payout.ReturnIDs))
		for _, orderID := range payout.OrderIDs {
			claims = append(claims, models.PayoutClaim{
				VendorID:   vendor.ID,
				SourceType: constants.PayoutClaimSourceOrder,
				SourceID:   orderID,
				PayoutID:   payout.ID,
				CreatedAt:  now,
			})
		}
		for _, returnID := range payout.ReturnIDs {
			claims = append(claims, models.PayoutClaim{
				VendorID:   vendor.ID,
				SourceType: constants.PayoutClaimSourceReturn,
				SourceID:   returnID,
				PayoutID:   payout.ID,
				CreatedAt:  now,
			})
		}
		if err := repo.CreateClaims(claims); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPayoutOrdersClaimed
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPayoutOrdersClaimed) {
			return nil, err
		}
		logger.Errorw("payout_create_failed", "vendor_id", vendor.ID, "period_start", calc.PeriodStart, "period_end", calc.PeriodEnd, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPayoutCreateFailed, err)
	}

	logger.Infow("payout_created",
		"payout_id", payout.ID,
		"payout_no", payout.PayoutNo,
		"vendor_id", vendor.ID,
		"net_amount", payout.NetAmount.String(),
		"total_orders", payout.TotalOrders,
	)
	publishPayoutEvent(ctx, s.queueClient, s.notifier, queue.PayoutEventCreated, payout)
	return payout, nil
}

// Process pending -> processing
func (s *PayoutService) Process(ctx context.Context, payoutID uint, adminID uint) (*models.VendorPayout, error) {
	now := s.now()
	err := s.payoutRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.payoutRepo.WithTx(tx)
		payout, err := repo.GetByIDForUpdate(payoutID)
		if err != nil {
			return err
		}
		if payout == nil {
			return ErrPayoutNotFound
		}
		if payout.Status != constants.PayoutStatusPending {
			return newPayoutStateError(payout.ID, payout.Status, constants.PayoutStatusPending)
		}
		return s.transition(repo, payout.ID, []string{constants.PayoutStatusPending}, map[string]interface{}{
			"status":       constants.PayoutStatusProcessing,
			"processed_at": now,
			"processed_by": adminID,
			"updated_at":   now,
		})
	})
	if err != nil {
		return nil, s.wrapTransitionError("process", payoutID, err)
	}
	payout, err := s.Get(payoutID)
	if err != nil {
		return nil, err
	}
	logger.Infow("payout_processing", "payout_id", payoutID, "admin_id", adminID)
	publishPayoutEvent(ctx, s.queueClient, s.notifier, queue.PayoutEventProcessing, payout)
	return payout, nil
}

// Complete processing -> completed，并在同一事务内记账钱包与流水。
// 已完成的结算单再次完成返回 ErrPayoutAlreadyCompleted，钱包不变。
func (s *PayoutService) Complete(ctx context.Context, payoutID uint, input CompletePayoutInput) (*models.VendorPayout, *models.VendorWallet, error) {
	reference := strings.TrimSpace(input.PaymentReference)
	if reference == "" {
		return nil, nil, ErrPayoutReferenceRequired
	}
	method := strings.TrimSpace(input.PaymentMethod)
	if method == "" {
		method = constants.PayoutPaymentMethodBank
	}

	now := s.now()
	var wallet *models.VendorWallet
	err := s.payoutRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.payoutRepo.WithTx(tx)
		payout, err := repo.GetByIDForUpdate(payoutID)
		if err != nil {
			return err
		}
		if payout == nil {
			return ErrPayoutNotFound
		}
		if payout.Status == constants.PayoutStatusCompleted {
			return ErrPayoutAlreadyCompleted
		}
		if payout.Status != constants.PayoutStatusProcessing {
			return newPayoutStateError(payout.ID, payout.Status, constants.PayoutStatusProcessing)
		}

		updates := map[string]interface{}{
			"status":            constants.PayoutStatusCompleted,
			"completed_at":      now,
			"payment_method":    method,
			"payment_reference": reference,
			"payment_gateway":   strings.TrimSpace(input.PaymentGateway),
			"updated_at":        now,
		}
		if input.PaymentResponse != nil {
			updates["payment_response"] = input.PaymentResponse
		}
		if err := s.transition(repo, payout.ID, []string{constants.PayoutStatusProcessing}, updates); err != nil {
			return err
		}

		payout.Status = constants.PayoutStatusCompleted
		payout.PaymentMethod = method
		payout.PaymentReference = reference
		updatedWallet, _, err := s.walletService.ApplyPayoutCompletionInTx(tx, payout, now)
		if err != nil {
			return err
		}
		wallet = updatedWallet
		return nil
	})
	if err != nil {
		return nil, nil, s.wrapTransitionError("complete", payoutID, err)
	}

	payout, err := s.Get(payoutID)
	if err != nil {
		return nil, nil, err
	}
	logger.Infow("payout_completed",
		"payout_id", payout.ID,
		"vendor_id", payout.VendorID,
		"net_amount", payout.NetAmount.String(),
		"payment_reference", reference,
		"total_withdrawn", wallet.TotalWithdrawn.String(),
	)
	publishPayoutEvent(ctx, s.queueClient, s.notifier, queue.PayoutEventCompleted, payout)
	return payout, wallet, nil
}

// Fail pending|processing -> failed，释放订单占用，不影响钱包
func (s *PayoutService) Fail(ctx context.Context, payoutID uint, reason string) (*models.VendorPayout, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrPayoutReasonRequired
	}
	now := s.now()
	nonTerminal := []string{constants.PayoutStatusPending, constants.PayoutStatusProcessing}
	err := s.payoutRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.payoutRepo.WithTx(tx)
		payout, err := repo.GetByIDForUpdate(payoutID)
		if err != nil {
			return err
		}
		if payout == nil {
			return ErrPayoutNotFound
		}
		if !isNonTerminalPayoutStatus(payout.Status) {
			return newPayoutStateError(payout.ID, payout.Status, nonTerminal...)
		}
		if err := s.transition(repo, payout.ID, nonTerminal, map[string]interface{}{
			"status":         constants.PayoutStatusFailed,
			"failed_at":      now,
			"failure_reason": reason,
			"updated_at":     now,
		}); err != nil {
			return err
		}
		_, err = repo.DeleteClaimsByPayoutID(payout.ID)
		return err
	})
	if err != nil {
		return nil, s.wrapTransitionError("fail", payoutID, err)
	}
	payout, err := s.Get(payoutID)
	if err != nil {
		return nil, err
	}
	logger.Infow("payout_failed", "payout_id", payoutID, "reason", reason)
	publishPayoutEvent(ctx, s.queueClient, s.notifier, queue.PayoutEventFailed, payout)
	return payout, nil
}

// Get 获取结算单
func (s *PayoutService) Get(payoutID uint) (*models.VendorPayout, error) {
	payout, err := s.payoutRepo.GetByID(payoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutFetchFailed, err)
	}
	if payout == nil {
		return nil, ErrPayoutNotFound
	}
	return payout, nil
}

// List 分页查询结算单
func (s *PayoutService) List(filter repository.PayoutListFilter) ([]models.VendorPayout, int64, error) {
	payouts, total, err := s.payoutRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPayoutFetchFailed, err)
	}
	return payouts, total, nil
}

// ListDuePending 计划付款日不晚于 today 且仍为 pending 的结算单
func (s *PayoutService) ListDuePending(today time.Time) ([]models.VendorPayout, error) {
	payouts, _, err := s.payoutRepo.List(repository.PayoutListFilter{Status: constants.PayoutStatusPending})
	if err != nil {
		return nil, err
	}
	cutoff := today.In(s.location).Format(constants.DateLayout)
	due := make([]models.VendorPayout, 0)
	for _, payout := range payouts {
		if payout.ScheduledPayoutDate == nil || *payout.ScheduledPayoutDate > cutoff {
			continue
		}
		due = append(due, payout)
	}
	return due, nil
}

// NotifyDuePayouts 推送到期待付款提醒
func (s *PayoutService) NotifyDuePayouts(ctx context.Context, today time.Time) (int, error) {
	due, err := s.ListDuePending(today)
	if err != nil {
		return 0, err
	}
	for i := range due {
		publishPayoutEvent(ctx, s.queueClient, s.notifier, queue.PayoutEventDue, &due[i])
	}
	return len(due), nil
}

// transition 按状态条件更新；行数为 0 说明并发请求已先一步改变状态
func (s *PayoutService) transition(repo repository.PayoutRepository, payoutID uint, from []string, updates map[string]interface{}) error {
	affected, err := repo.UpdateWithStatus(payoutID, from, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		current, err := repo.GetByID(payoutID)
		if err != nil {
			return err
		}
		if current != nil && current.Status == constants.PayoutStatusCompleted {
			return ErrPayoutAlreadyCompleted
		}
		status := ""
		if current != nil {
			status = current.Status
		}
		return newPayoutStateError(payoutID, status, from...)
	}
	return nil
}

// wrapTransitionError 业务错误原样返回，其余视为持久化失败
func (s *PayoutService) wrapTransitionError(action string, payoutID uint, err error) error {
	switch {
	case errors.Is(err, ErrPayoutNotFound),
		errors.Is(err, ErrPayoutStatusInvalid),
		errors.Is(err, ErrPayoutAlreadyCompleted):
		logger.Warnw("payout_transition_rejected", "action", action, "payout_id", payoutID, "error", err)
		return err
	case errors.Is(err, ErrPayoutLedgerConflict):
		// 结算单未完成却已有付款流水，需人工核对
		logger.Errorw("payout_ledger_conflict", "action", action, "payout_id", payoutID, "error", err)
		return err
	default:
		logger.Errorw("payout_transition_failed", "action", action, "payout_id", payoutID, "error", err)
		return fmt.Errorf("%w: %v", ErrPayoutUpdateFailed, err)
	}
}

func (s *PayoutService) loadVendorAndPeriod(vendorID uint, start, end string) (*models.Vendor, PayoutPeriod, error) {
	period, err := ParsePayoutPeriod(start, end, s.location)
	if err != nil {
		return nil, PayoutPeriod{}, err
	}
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, PayoutPeriod{}, err
	}
	if vendor == nil {
		return nil, PayoutPeriod{}, ErrVendorNotFound
	}
	return vendor, period, nil
}

func isNonTerminalPayoutStatus(status string) bool {
	return status == constants.PayoutStatusPending || status == constants.PayoutStatusProcessing
}

func generatePayoutNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("%s%s%s", constants.PayoutNumberPrefix, now.Format("20060102150405"), suffix)
}
