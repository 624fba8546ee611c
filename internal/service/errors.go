package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrVendorInvalid      = errors.New("vendor invalid")
	ErrVendorCreateFailed = errors.New("vendor create failed")
	ErrVendorUpdateFailed = errors.New("vendor update failed")

	ErrPeriodInvalid = errors.New("payout period invalid")

	ErrPayoutNotFound          = errors.New("payout not found")
	ErrPayoutNoDeliveredOrders = errors.New("no delivered orders for period")
	ErrPayoutStatusInvalid     = errors.New("payout status invalid")
	ErrPayoutAlreadyCompleted  = errors.New("payout already completed")
	ErrPayoutLedgerConflict    = errors.New("payout ledger entry already exists")
	ErrPayoutOrdersClaimed     = errors.New("payout orders already claimed")
	ErrPayoutAmountInvalid     = errors.New("payout amount invalid")
	ErrPayoutReferenceRequired = errors.New("payment reference required")
	ErrPayoutReasonRequired    = errors.New("failure reason required")
	ErrPayoutCreateFailed      = errors.New("payout create failed")
	ErrPayoutUpdateFailed      = errors.New("payout update failed")
	ErrPayoutFetchFailed       = errors.New("payout fetch failed")
	ErrPayoutExportFailed      = errors.New("payout export failed")

	ErrHolidayLookaheadExceeded = errors.New("bank holiday lookahead exceeded")
	ErrHolidayDateInvalid       = errors.New("bank holiday date invalid")
	ErrHolidayExists            = errors.New("bank holiday exists")
	ErrHolidayNotFound          = errors.New("bank holiday not found")
	ErrHolidayFetchFailed       = errors.New("bank holiday fetch failed")
	ErrHolidayUpdateFailed      = errors.New("bank holiday update failed")

	ErrWalletUpdateFailed            = errors.New("vendor wallet update failed")
	ErrWalletTransactionCreateFailed = errors.New("wallet transaction create failed")

	ErrPayoutPolicyInvalid  = errors.New("payout policy invalid")
	ErrFinancialYearInvalid = errors.New("financial year invalid")
)

// PayoutStateError 非法状态流转，携带当前状态
type PayoutStateError struct {
	PayoutID uint
	Current  string
	Expected []string
}

func (e *PayoutStateError) Error() string {
	if e == nil {
		return ErrPayoutStatusInvalid.Error()
	}
	return fmt.Sprintf("payout %d is %s, expected %s", e.PayoutID, e.Current, strings.Join(e.Expected, "|"))
}

// Unwrap 兼容 errors.Is(err, ErrPayoutStatusInvalid)
func (e *PayoutStateError) Unwrap() error {
	return ErrPayoutStatusInvalid
}

func newPayoutStateError(payoutID uint, current string, expected ...string) error {
	return &PayoutStateError{
		PayoutID: payoutID,
		Current:  current,
		Expected: expected,
	}
}
