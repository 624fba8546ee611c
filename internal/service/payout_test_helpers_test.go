package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/queue"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testIST = time.FixedZone("IST", 5*3600+1800)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyPayoutEvent(_ context.Context, notification PayoutNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification.Event)
	return nil
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type payoutTestEnv struct {
	db         *gorm.DB
	payoutRepo *repository.GormPayoutRepository
	payoutSvc  *PayoutService
	walletSvc  *VendorWalletService
	settingSvc *SettingService
	holidaySvc *BankHolidayService
	vendorSvc  *VendorService
	notifier   *recordingNotifier
}

func openPayoutTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func setupPayoutServiceTest(t *testing.T, name string) *payoutTestEnv {
	t.Helper()
	db := openPayoutTestDB(t, name)
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	payoutRepo := repository.NewPayoutRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	settingSvc := NewSettingService(repository.NewSettingRepository(db))
	holidaySvc := NewBankHolidayService(repository.NewBankHolidayRepository(db), time.Minute)
	walletSvc := NewVendorWalletService(repository.NewWalletRepository(db), "INR")
	calculator := NewPayoutCalculationService(
		NewPayoutPeriodAggregator(repository.NewOrderRepository(db)),
		NewBankHolidayCalendar(holidaySvc, 30),
		testIST,
	)
	notifier := &recordingNotifier{}
	payoutSvc := NewPayoutService(PayoutServiceOptions{
		PayoutRepo:     payoutRepo,
		VendorRepo:     vendorRepo,
		Calculator:     calculator,
		WalletService:  walletSvc,
		SettingService: settingSvc,
		QueueClient:    queueClient,
		Notifier:       notifier,
		PolicyFallback: PayoutPolicyDefault(),
		Location:       testIST,
		Currency:       "INR",
	})
	return &payoutTestEnv{
		db:         db,
		payoutRepo: payoutRepo,
		payoutSvc:  payoutSvc,
		walletSvc:  walletSvc,
		settingSvc: settingSvc,
		holidaySvc: holidaySvc,
		vendorSvc:  NewVendorService(vendorRepo),
		notifier:   notifier,
	}
}

// useFlatPolicy 佣金、GST 与 TDS 全部置 0，净额等于销售额减退货运费
func (e *payoutTestEnv) useFlatPolicy(t *testing.T) {
	t.Helper()
	if _, err := e.settingSvc.UpdatePayoutPolicy(PayoutPolicyConfig{ReturnPeriodDays: 30}); err != nil {
		t.Fatalf("update payout policy failed: %v", err)
	}
}

func seedPayoutVendor(t *testing.T, db *gorm.DB, name string, commission *float64) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		Name:                 name,
		Email:                fmt.Sprintf("%s@example.com", name),
		Status:               constants.VendorStatusApproved,
		CommissionPercentage: commission,
		BankAccount: models.VendorBankAccount{
			AccountHolderName: name,
			AccountNumber:     "001234567890",
			IFSCCode:          "HDFC0000123",
			BankName:          "HDFC Bank",
		},
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	return vendor
}

func seedDeliveredItem(t *testing.T, db *gorm.DB, vendorID uint, orderNo string, amount string, deliveredAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		Status:      constants.OrderStatusDelivered,
		Currency:    "INR",
		TotalAmount: models.MustMoney(amount),
		DeliveredAt: &deliveredAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := &models.OrderItem{
		OrderID:     order.ID,
		VendorID:    vendorID,
		ProductName: "item " + orderNo,
		UnitPrice:   models.MustMoney(amount),
		Quantity:    1,
		TotalAmount: models.MustMoney(amount),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return order
}

func seedCustomerReturn(t *testing.T, db *gorm.DB, vendorID, orderID uint, returnNo, fee string, refundedAt time.Time) *models.ReturnOrder {
	t.Helper()
	ret := &models.ReturnOrder{
		ReturnNo:          returnNo,
		OrderID:           orderID,
		VendorID:          vendorID,
		Status:            constants.ReturnStatusRefundCompleted,
		IsCustomerReturn:  true,
		ReturnShippingFee: models.MustMoney(fee),
		RefundCompletedAt: &refundedAt,
	}
	if err := db.Create(ret).Error; err != nil {
		t.Fatalf("create return order failed: %v", err)
	}
	return ret
}

func ptrFloat(v float64) *float64 {
	return &v
}
