package domain

import (
	"time"
)

// HistoryType selects which side of the ledger a history query matches.
type HistoryType string

const (
	HistoryAll        HistoryType = "all"
	HistoryDeposit    HistoryType = "deposit"
	HistoryWithdrawal HistoryType = "withdrawal"
)

// IsValid reports whether t is one of the three supported filters.
func (t HistoryType) IsValid() bool {
	switch t {
	case HistoryAll, HistoryDeposit, HistoryWithdrawal:
		return true
	}
	return false
}

// HistoryEntry is the immutable audit record of one committed balance
// mutation. For a pure deposit only the deposit-side fields are set, for a
// pure withdrawal only the withdrawal-side fields; a transfer carries both.
type HistoryEntry struct {
	ID        int64
	Reference string // caller-visible unique operation reference (ULID)
	Amount    int64
	WBalance  *int64 // withdrawal-side resulting balance
	DBalance  *int64 // deposit-side resulting balance
	WAccount  *int64 // withdrawal-side account id
	DAccount  *int64 // deposit-side account id
	CreatedAt time.Time

	// Account numbers joined in by history listings; empty on insert.
	WAccountNumber string
	DAccountNumber string
}

// Validate enforces the side invariant: exactly one side set for a pure
// deposit or withdrawal, both sides (with both balances) for a transfer.
func (h *HistoryEntry) Validate() error {
	if h.Amount <= 0 {
		return ErrInvalidAmount
	}

	switch {
	case h.WAccount != nil && h.DAccount != nil:
		if h.WBalance == nil || h.DBalance == nil {
			return ErrInvalidOperation
		}
	case h.WAccount != nil:
		if h.WBalance == nil || h.DBalance != nil {
			return ErrInvalidOperation
		}
	case h.DAccount != nil:
		if h.DBalance == nil || h.WBalance != nil {
			return ErrInvalidOperation
		}
	default:
		return ErrInvalidOperation
	}

	return nil
}
