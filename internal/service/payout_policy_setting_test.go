package service

import (
	"errors"
	"testing"

	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/repository"
)

func TestGetPayoutPolicyFallsBackWhenUnset(t *testing.T) {
	db := openPayoutTestDB(t, "policy_fallback")
	svc := NewSettingService(repository.NewSettingRepository(db))

	fallback := PayoutPolicyConfig{DefaultCommissionRate: 12, CommissionGSTRate: 18, TDSRate: 1, ReturnPeriodDays: 15}
	got, err := svc.GetPayoutPolicy(fallback)
	if err != nil {
		t.Fatalf("get payout policy failed: %v", err)
	}
	if got != fallback {
		t.Fatalf("want fallback %+v got %+v", fallback, got)
	}
}

func TestUpdatePayoutPolicyPersists(t *testing.T) {
	db := openPayoutTestDB(t, "policy_update")
	svc := NewSettingService(repository.NewSettingRepository(db))

	updated, err := svc.UpdatePayoutPolicy(PayoutPolicyConfig{DefaultCommissionRate: 8.456, CommissionGSTRate: 18, TDSRate: 0.5, ReturnPeriodDays: 7})
	if err != nil {
		t.Fatalf("update payout policy failed: %v", err)
	}
	if updated.DefaultCommissionRate != 8.46 {
		t.Fatalf("rate should be rounded to 2 places, got %v", updated.DefaultCommissionRate)
	}
	got, err := svc.GetPayoutPolicy(PayoutPolicyDefault())
	if err != nil {
		t.Fatalf("get payout policy failed: %v", err)
	}
	if got != updated {
		t.Fatalf("want %+v got %+v", updated, got)
	}

	if _, err := svc.UpdatePayoutPolicy(PayoutPolicyConfig{DefaultCommissionRate: 120}); !errors.Is(err, ErrPayoutPolicyInvalid) {
		t.Fatalf("want ErrPayoutPolicyInvalid got %v", err)
	}
	if _, err := svc.UpdatePayoutPolicy(PayoutPolicyConfig{ReturnPeriodDays: -1}); !errors.Is(err, ErrPayoutPolicyInvalid) {
		t.Fatalf("want ErrPayoutPolicyInvalid got %v", err)
	}
}

func TestPayoutPolicyFromJSONKeepsFallbackForBadFields(t *testing.T) {
	fallback := PayoutPolicyDefault()
	got := payoutPolicyFromJSON(map[string]interface{}{
		constants.SettingFieldDefaultCommissionRate: "12.5",
		constants.SettingFieldTDSRate:               "abc",
		constants.SettingFieldReturnPeriodDays:      float64(14),
	}, fallback)
	if got.DefaultCommissionRate != 12.5 {
		t.Fatalf("string rate should parse, got %v", got.DefaultCommissionRate)
	}
	if got.TDSRate != fallback.TDSRate {
		t.Fatalf("bad tds should keep fallback, got %v", got.TDSRate)
	}
	if got.ReturnPeriodDays != 14 {
		t.Fatalf("return period want 14 got %d", got.ReturnPeriodDays)
	}
}

func TestPayoutPolicyFromConfigRejectsInvalid(t *testing.T) {
	got := PayoutPolicyFromConfig(config.PayoutConfig{DefaultCommissionRate: 150, CommissionGSTRate: 18, TDSRate: 1, ReturnPeriodDays: 30})
	if got != PayoutPolicyDefault() {
		t.Fatalf("invalid config should fall back to defaults, got %+v", got)
	}
}
