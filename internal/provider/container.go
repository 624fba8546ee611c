package provider

import (
	"time"

	"github.com/vendorhub/payout/internal/cache"
	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/queue"
	"github.com/vendorhub/payout/internal/repository"
	"github.com/vendorhub/payout/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Location    *time.Location

	// Repositories
	VendorRepo      repository.VendorRepository
	OrderRepo       repository.OrderRepository
	PayoutRepo      repository.PayoutRepository
	WalletRepo      repository.WalletRepository
	BankHolidayRepo repository.BankHolidayRepository
	SettingRepo     repository.SettingRepository

	// Services
	SettingService      *service.SettingService
	VendorService       *service.VendorService
	BankHolidayService  *service.BankHolidayService
	HolidayCalendar     *service.BankHolidayCalendar
	PayoutCalculator    *service.PayoutCalculationService
	VendorWalletService *service.VendorWalletService
	PayoutNotifier      service.PayoutNotifier
	PayoutService       *service.PayoutService
	PayoutReportService *service.PayoutReportService
	PayoutExportService *service.PayoutExportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时为禁用客户端，通知同步交给 PayoutNotifier
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Location:    service.LoadPayoutLocation(cfg.Payout.Timezone),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.VendorRepo = repository.NewVendorRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PayoutRepo = repository.NewPayoutRepository(db)
	c.WalletRepo = repository.NewWalletRepository(db)
	c.BankHolidayRepo = repository.NewBankHolidayRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	payoutCfg := c.Config.Payout
	policyFallback := service.PayoutPolicyFromConfig(payoutCfg)

	c.SettingService = service.NewSettingService(c.SettingRepo)
	if _, err := c.SettingService.GetPayoutPolicy(policyFallback); err != nil {
		logger.Warnw("provider_load_payout_policy_failed", "error", err)
	}

	c.VendorService = service.NewVendorService(c.VendorRepo)
	c.BankHolidayService = service.NewBankHolidayService(c.BankHolidayRepo, time.Duration(payoutCfg.HolidayCacheSeconds)*time.Second)
	c.HolidayCalendar = service.NewBankHolidayCalendar(c.BankHolidayService, payoutCfg.HolidayLookaheadDays)
	c.PayoutCalculator = service.NewPayoutCalculationService(
		service.NewPayoutPeriodAggregator(c.OrderRepo),
		c.HolidayCalendar,
		c.Location,
	)
	c.VendorWalletService = service.NewVendorWalletService(c.WalletRepo, payoutCfg.Currency)
	c.PayoutNotifier = service.NewLogPayoutNotifier()
	c.PayoutService = service.NewPayoutService(service.PayoutServiceOptions{
		PayoutRepo:     c.PayoutRepo,
		VendorRepo:     c.VendorRepo,
		Calculator:     c.PayoutCalculator,
		WalletService:  c.VendorWalletService,
		SettingService: c.SettingService,
		QueueClient:    c.QueueClient,
		Notifier:       c.PayoutNotifier,
		PolicyFallback: policyFallback,
		Location:       c.Location,
		Currency:       payoutCfg.Currency,
	})
	c.PayoutReportService = service.NewPayoutReportService(c.PayoutRepo, c.Location)
	c.PayoutExportService = service.NewPayoutExportService(c.PayoutRepo, c.Location)
}
