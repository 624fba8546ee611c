package config

import (
	"os"
	"testing"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	cfg := Load()
	if cfg.Payout.DefaultCommissionRate != 10 {
		t.Fatalf("default commission rate want 10 got %v", cfg.Payout.DefaultCommissionRate)
	}
	if cfg.Payout.CommissionGSTRate != 18 {
		t.Fatalf("default gst rate want 18 got %v", cfg.Payout.CommissionGSTRate)
	}
	if cfg.Payout.TDSRate != 1 {
		t.Fatalf("default tds rate want 1 got %v", cfg.Payout.TDSRate)
	}
	if cfg.Payout.ReturnPeriodDays != 30 {
		t.Fatalf("default return period want 30 got %d", cfg.Payout.ReturnPeriodDays)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("default driver want sqlite got %s", cfg.Database.Driver)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Setenv("PAYOUT_RETURN_PERIOD_DAYS", "7")
	t.Setenv("SERVER_PORT", "9090")

	cfg := Load()
	if cfg.Payout.ReturnPeriodDays != 7 {
		t.Fatalf("env override return period want 7 got %d", cfg.Payout.ReturnPeriodDays)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env override port want 9090 got %s", cfg.Server.Port)
	}
}
