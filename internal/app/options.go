package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：all 同时启动 API 与 Worker
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 15 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return ModeAll
	}
	return mode
}

func parseMode(raw string) (string, error) {
	switch mode := normalizeMode(raw); mode {
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported run mode: %s", mode)
	}
}

func servesHTTP(mode string) bool { return mode == ModeAll || mode == ModeAPI }

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	opts.Mode = normalizeMode(opts.Mode)
	return opts
}
