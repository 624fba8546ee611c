package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func createDeliveredOrder(t *testing.T, db *gorm.DB, orderNo string, status string, deliveredAt *time.Time, items ...models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:     orderNo,
		Status:      status,
		Currency:    "INR",
		DeliveredAt: deliveredAt,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create order item failed: %v", err)
		}
	}
	return order
}

func TestOrderRepositoryListDeliveredItemsByVendor(t *testing.T) {
	db := setupRepositoryTestDB(t, "order_repo_delivered")
	repo := NewOrderRepository(db)
	loc := time.FixedZone("IST", 5*3600+1800)

	window := TimeWindow{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
		To:   time.Date(2024, 2, 1, 0, 0, 0, 0, loc),
	}
	inside := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	lastSecond := time.Date(2024, 1, 31, 23, 59, 0, 0, loc)
	before := time.Date(2023, 12, 31, 23, 0, 0, 0, loc)
	after := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)

	o1 := createDeliveredOrder(t, db, "O-1", constants.OrderStatusDelivered, &inside,
		models.OrderItem{VendorID: 1, Quantity: 1, TotalAmount: models.MustMoney("100.00")},
		models.OrderItem{VendorID: 2, Quantity: 1, TotalAmount: models.MustMoney("50.00")},
	)
	createDeliveredOrder(t, db, "O-2", constants.OrderStatusDelivered, &lastSecond,
		models.OrderItem{VendorID: 1, Quantity: 2, TotalAmount: models.MustMoney("20.00")},
	)
	createDeliveredOrder(t, db, "O-3", constants.OrderStatusDelivered, &before,
		models.OrderItem{VendorID: 1, Quantity: 1, TotalAmount: models.MustMoney("9.00")},
	)
	createDeliveredOrder(t, db, "O-4", constants.OrderStatusDelivered, &after,
		models.OrderItem{VendorID: 1, Quantity: 1, TotalAmount: models.MustMoney("9.00")},
	)
	createDeliveredOrder(t, db, "O-5", constants.OrderStatusShipped, &inside,
		models.OrderItem{VendorID: 1, Quantity: 1, TotalAmount: models.MustMoney("9.00")},
	)

	items, err := repo.ListDeliveredItemsByVendor(1, window)
	if err != nil {
		t.Fatalf("list delivered items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.VendorID != 1 {
			t.Fatalf("unexpected vendor item: %+v", item)
		}
		if item.Order == nil || item.Order.DeliveredAt == nil {
			t.Fatalf("order should be preloaded")
		}
	}

	if err := db.Create(&models.PayoutClaim{
		VendorID:   1,
		SourceType: constants.PayoutClaimSourceOrder,
		SourceID:   o1.ID,
		PayoutID:   99,
	}).Error; err != nil {
		t.Fatalf("create claim failed: %v", err)
	}
	items, err = repo.ListDeliveredItemsByVendor(1, window)
	if err != nil {
		t.Fatalf("list delivered items failed: %v", err)
	}
	if len(items) != 1 || items[0].Order.OrderNo != "O-2" {
		t.Fatalf("claimed order should be excluded, got %+v", items)
	}

	// 其他供应商的占用不影响
	items, err = repo.ListDeliveredItemsByVendor(2, window)
	if err != nil {
		t.Fatalf("list vendor 2 items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("vendor 2 expected 1 item, got %d", len(items))
	}
}

func TestOrderRepositoryListRefundedCustomerReturns(t *testing.T) {
	db := setupRepositoryTestDB(t, "order_repo_returns")
	repo := NewOrderRepository(db)

	window := TimeWindow{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	inside := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)

	returns := []models.ReturnOrder{
		{ReturnNo: "R-1", OrderID: 1, VendorID: 1, Status: constants.ReturnStatusRefundCompleted, IsCustomerReturn: true, ReturnShippingFee: models.MustMoney("40.00"), RefundCompletedAt: &inside},
		{ReturnNo: "R-2", OrderID: 2, VendorID: 1, Status: constants.ReturnStatusCompleted, IsCustomerReturn: true, ReturnShippingFee: models.MustMoney("60.00"), RefundCompletedAt: &inside},
		{ReturnNo: "R-3", OrderID: 3, VendorID: 1, Status: constants.ReturnStatusCompleted, IsCustomerReturn: false, ReturnShippingFee: models.MustMoney("70.00"), RefundCompletedAt: &inside},
		{ReturnNo: "R-4", OrderID: 4, VendorID: 1, Status: constants.ReturnStatusPickedUp, IsCustomerReturn: true, ReturnShippingFee: models.MustMoney("80.00"), RefundCompletedAt: &inside},
		{ReturnNo: "R-5", OrderID: 5, VendorID: 1, Status: constants.ReturnStatusCompleted, IsCustomerReturn: true, ReturnShippingFee: models.MustMoney("90.00"), RefundCompletedAt: &outside},
	}
	if err := db.Create(&returns).Error; err != nil {
		t.Fatalf("create returns failed: %v", err)
	}

	got, err := repo.ListRefundedCustomerReturns(1, window)
	if err != nil {
		t.Fatalf("list returns failed: %v", err)
	}
	if len(got) != 2 || got[0].ReturnNo != "R-1" || got[1].ReturnNo != "R-2" {
		t.Fatalf("unexpected returns: %+v", got)
	}
}
