package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tenco/bankcore/internal/domain"
)

// AccountResponse represents an account in API responses. The credential
// hash never leaves the service.
type AccountResponse struct {
	ID        int64           `json:"id"`
	Number    string          `json:"number"`
	Balance   decimal.Decimal `json:"balance"`
	UserID    int64           `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Balance:   domain.MajorUnits(a.Balance),
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// HistoryEntryResponse represents one ledger entry in API responses.
// Side fields are omitted when the entry has no such side.
type HistoryEntryResponse struct {
	ID                int64            `json:"id"`
	Reference         string           `json:"reference"`
	Amount            decimal.Decimal  `json:"amount"`
	WithdrawalAccount string           `json:"withdrawal_account,omitempty"`
	WithdrawalBalance *decimal.Decimal `json:"withdrawal_balance,omitempty"`
	DepositAccount    string           `json:"deposit_account,omitempty"`
	DepositBalance    *decimal.Decimal `json:"deposit_balance,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// HistoryEntryFromDomain converts a domain history entry to a response.
func HistoryEntryFromDomain(e *domain.HistoryEntry) *HistoryEntryResponse {
	resp := &HistoryEntryResponse{
		ID:        e.ID,
		Reference: e.Reference,
		Amount:    domain.MajorUnits(e.Amount),
		CreatedAt: e.CreatedAt,
	}

	if e.WBalance != nil {
		wb := domain.MajorUnits(*e.WBalance)
		resp.WithdrawalBalance = &wb
		resp.WithdrawalAccount = e.WAccountNumber
	}
	if e.DBalance != nil {
		db := domain.MajorUnits(*e.DBalance)
		resp.DepositBalance = &db
		resp.DepositAccount = e.DAccountNumber
	}

	return resp
}

// HistoryEntriesFromDomain converts domain history entries to responses.
func HistoryEntriesFromDomain(entries []*domain.HistoryEntry) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = HistoryEntryFromDomain(e)
	}
	return result
}

// PageResponse wraps a paged collection with its total count.
type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
