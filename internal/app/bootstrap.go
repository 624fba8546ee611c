package app

import (
	"errors"

	"github.com/vendorhub/payout/internal/cache"
	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/provider"
	"github.com/vendorhub/payout/internal/router"
	"github.com/vendorhub/payout/internal/worker"

	"go.uber.org/zap"
)

// BuildRunner 按运行模式组装 HTTP 与 Worker 服务
func BuildRunner(cfg *config.Config, mode string, log *zap.SugaredLogger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := parseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service
	if servesHTTP(mode) {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(serverAddr(cfg), engine))
	}

	// 队列未启用时 all 模式只提供 API，结算通知走同步通道
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll && log != nil {
		log.Warnw("app_worker_skipped", "reason", "queue disabled")
	}

	runner := NewRunner(services...)
	runner.AddCloser("queue_client", container.QueueClient.Close)
	runner.AddCloser("redis", cache.Close)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode, opts.Logger)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", serverAddr(opts.Config),
		"mode", opts.Mode,
		"timezone", opts.Config.Payout.Timezone,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}

func serverAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}
