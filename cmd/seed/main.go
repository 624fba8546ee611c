package main

import (
	"log"
	"time"

	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/service"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type seedOrderLine struct {
	ProductName string
	UnitPrice   string
	Quantity    int
}

type seedOrder struct {
	OrderNo      string
	VendorEmail  string
	DeliveredDay int
	Lines        []seedOrderLine
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.ToPoolConfig()); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	loc := service.LoadPayoutLocation(cfg.Payout.Timezone)
	seedBankHolidays(stdLog)
	vendors := seedVendors(stdLog)

	// 上个自然月的已签收订单，便于直接试算结算单
	now := time.Now().In(loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
	orders := []seedOrder{
		{OrderNo: "SEED-1001", VendorEmail: "kala@example.com", DeliveredDay: 3, Lines: []seedOrderLine{
			{ProductName: "Handloom Saree", UnitPrice: "4500", Quantity: 1},
			{ProductName: "Silk Stole", UnitPrice: "1200", Quantity: 2},
		}},
		{OrderNo: "SEED-1002", VendorEmail: "kala@example.com", DeliveredDay: 11, Lines: []seedOrderLine{
			{ProductName: "Block Print Kurta", UnitPrice: "1899.50", Quantity: 3},
		}},
		{OrderNo: "SEED-1003", VendorEmail: "spice@example.com", DeliveredDay: 7, Lines: []seedOrderLine{
			{ProductName: "Garam Masala 500g", UnitPrice: "349", Quantity: 10},
		}},
		{OrderNo: "SEED-1004", VendorEmail: "spice@example.com", DeliveredDay: 19, Lines: []seedOrderLine{
			{ProductName: "Kashmiri Saffron 2g", UnitPrice: "780", Quantity: 4},
		}},
	}
	for _, plan := range orders {
		vendor, ok := vendors[plan.VendorEmail]
		if !ok {
			stdLog.Printf("Skip order %s: vendor %s missing", plan.OrderNo, plan.VendorEmail)
			continue
		}
		seedDeliveredOrder(stdLog, vendor, plan, monthStart.AddDate(0, 0, plan.DeliveredDay-1).Add(14*time.Hour))
	}

	// 买家主动退货，退货运费由供应商承担
	if vendor, ok := vendors["kala@example.com"]; ok {
		var order models.Order
		if err := models.DB.Where("order_no = ?", "SEED-1002").First(&order).Error; err == nil {
			refundedAt := monthStart.AddDate(0, 0, 15).Add(11 * time.Hour)
			seedReturn(stdLog, models.ReturnOrder{
				ReturnNo:          "SEED-RET-1002",
				OrderID:           order.ID,
				VendorID:          vendor.ID,
				Status:            constants.ReturnStatusRefundCompleted,
				IsCustomerReturn:  true,
				ReturnShippingFee: models.MustMoney("120"),
				RefundAmount:      models.MustMoney("1899.50"),
				RefundCompletedAt: &refundedAt,
			})
		}
	}

	stdLog.Printf("Seed completed, payout period %s ~ %s",
		monthStart.Format(constants.DateLayout),
		monthStart.AddDate(0, 1, -1).Format(constants.DateLayout),
	)
}

func seedBankHolidays(stdLog *log.Logger) {
	holidays := []models.BankHoliday{
		{Date: "2025-01-26", Name: "Republic Day"},
		{Date: "2025-03-14", Name: "Holi"},
		{Date: "2025-08-15", Name: "Independence Day"},
		{Date: "2025-10-02", Name: "Gandhi Jayanti"},
		{Date: "2025-10-21", Name: "Diwali"},
		{Date: "2025-12-25", Name: "Christmas"},
		{Date: "2026-01-26", Name: "Republic Day"},
		{Date: "2026-03-04", Name: "Holi"},
		{Date: "2026-08-15", Name: "Independence Day"},
		{Date: "2026-10-02", Name: "Gandhi Jayanti"},
		{Date: "2026-11-09", Name: "Diwali"},
		{Date: "2026-12-25", Name: "Christmas"},
	}
	for _, holiday := range holidays {
		var existing models.BankHoliday
		if err := models.DB.Where("date = ?", holiday.Date).First(&existing).Error; err == nil {
			stdLog.Printf("Bank holiday already exists: %s", holiday.Date)
			continue
		}
		item := holiday
		if err := models.DB.Create(&item).Error; err != nil {
			stdLog.Printf("Failed to create bank holiday %s: %v", holiday.Date, err)
			continue
		}
		stdLog.Printf("Created bank holiday: %s %s", holiday.Date, holiday.Name)
	}
}

func seedVendors(stdLog *log.Logger) map[string]models.Vendor {
	override := 8.5
	vendors := []models.Vendor{
		{
			Name:   "Kala Handlooms",
			Email:  "kala@example.com",
			Phone:  "+91-9800000001",
			Status: constants.VendorStatusApproved,
			BankAccount: models.VendorBankAccount{
				AccountHolderName: "Kala Handlooms LLP",
				AccountNumber:     "50100012345678",
				IFSCCode:          "HDFC0001234",
				BankName:          "HDFC Bank",
			},
		},
		{
			Name:                 "Spice Route Traders",
			Email:                "spice@example.com",
			Phone:                "+91-9800000002",
			Status:               constants.VendorStatusApproved,
			CommissionPercentage: &override,
			BankAccount: models.VendorBankAccount{
				AccountHolderName: "Spice Route Traders",
				AccountNumber:     "001234009876",
				IFSCCode:          "ICIC0000456",
				BankName:          "ICICI Bank",
			},
		},
	}
	result := make(map[string]models.Vendor, len(vendors))
	for _, vendor := range vendors {
		var existing models.Vendor
		if err := models.DB.Where("email = ?", vendor.Email).First(&existing).Error; err == nil {
			stdLog.Printf("Vendor already exists: %s", vendor.Email)
			result[vendor.Email] = existing
			continue
		}
		item := vendor
		if err := models.DB.Create(&item).Error; err != nil {
			stdLog.Printf("Failed to create vendor %s: %v", vendor.Email, err)
			continue
		}
		stdLog.Printf("Created vendor: %s (id=%d)", item.Name, item.ID)
		result[vendor.Email] = item
	}
	return result
}

func seedDeliveredOrder(stdLog *log.Logger, vendor models.Vendor, plan seedOrder, deliveredAt time.Time) {
	var existing models.Order
	if err := models.DB.Where("order_no = ?", plan.OrderNo).First(&existing).Error; err == nil {
		stdLog.Printf("Order already exists: %s", plan.OrderNo)
		return
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(plan.Lines))
	for _, line := range plan.Lines {
		unit := decimal.RequireFromString(line.UnitPrice)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			VendorID:    vendor.ID,
			ProductName: line.ProductName,
			UnitPrice:   models.NewMoneyFromDecimal(unit),
			Quantity:    line.Quantity,
			TotalAmount: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	order := models.Order{
		OrderNo:     plan.OrderNo,
		Status:      constants.OrderStatusDelivered,
		Currency:    "INR",
		TotalAmount: models.NewMoneyFromDecimal(total),
		DeliveredAt: &deliveredAt,
		Items:       items,
	}
	if err := models.DB.Create(&order).Error; err != nil {
		stdLog.Printf("Failed to create order %s: %v", plan.OrderNo, err)
		return
	}
	stdLog.Printf("Created order: %s vendor=%s total=%s INR", plan.OrderNo, vendor.Name, order.TotalAmount)
}

func seedReturn(stdLog *log.Logger, ret models.ReturnOrder) {
	var existing models.ReturnOrder
	if err := models.DB.Where("return_no = ?", ret.ReturnNo).First(&existing).Error; err == nil {
		stdLog.Printf("Return already exists: %s", ret.ReturnNo)
		return
	}
	if err := models.DB.Create(&ret).Error; err != nil {
		stdLog.Printf("Failed to create return %s: %v", ret.ReturnNo, err)
		return
	}
	stdLog.Printf("Created return: %s fee=%s", ret.ReturnNo, ret.ReturnShippingFee)
}
