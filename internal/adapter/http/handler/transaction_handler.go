package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tenco/bankcore/internal/adapter/http/dto"
	"github.com/tenco/bankcore/internal/adapter/http/middleware"
	"github.com/tenco/bankcore/internal/domain"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Deposit(ctx context.Context, number string, amount int64, callerUserID int64) (*domain.HistoryEntry, error)
	Withdraw(ctx context.Context, number, password string, amount int64, callerUserID int64) (*domain.HistoryEntry, error)
	Transfer(ctx context.Context, fromNumber, password, toNumber string, amount int64, callerUserID int64) (*domain.HistoryEntry, error)
}

// TransactionHandler handles money movement HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Deposit credits an account. Anyone may pay into any account, so no
// ownership check happens here.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := domain.MinorUnits(req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid amount", err.Error())
		return
	}

	entry, err := h.transactionUC.Deposit(r.Context(), req.AccountNumber, amount, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HistoryEntryFromDomain(entry))
}

// Withdraw debits one of the caller's accounts after credential checks.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := domain.MinorUnits(req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid amount", err.Error())
		return
	}

	entry, err := h.transactionUC.Withdraw(r.Context(), req.AccountNumber, req.Password, amount, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "withdrawal failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HistoryEntryFromDomain(entry))
}

// Transfer moves money from one of the caller's accounts to any other
// account.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := domain.MinorUnits(req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid amount", err.Error())
		return
	}

	entry, err := h.transactionUC.Transfer(r.Context(), req.FromAccountNumber, req.Password, req.ToAccountNumber, amount, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HistoryEntryFromDomain(entry))
}
