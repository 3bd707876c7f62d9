package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tenco/bankcore/internal/adapter/http/dto"
	"github.com/tenco/bankcore/internal/adapter/http/middleware"
	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	GetHistory(ctx context.Context, input usecase.GetHistoryInput) ([]*domain.HistoryEntry, int64, error)
}

// HistoryHandler serves an account's transaction history.
type HistoryHandler struct {
	historyUC HistoryService
	accountUC AccountService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService, accountUC AccountService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC, accountUC: accountUC}
}

// ListByAccount returns one page of an account's history, newest first.
// The type query parameter filters to deposits, withdrawals or all.
func (h *HistoryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}
	if err := account.CheckOwner(userID); err != nil {
		writeError(w, mapDomainError(err), "account not owned by caller", "")
		return
	}

	typ := domain.HistoryType(r.URL.Query().Get("type"))
	if typ == "" {
		typ = domain.HistoryAll
	}

	page := parseIntQuery(r, "page", 1)
	size := parseIntQuery(r, "size", 20)

	entries, total, err := h.historyUC.GetHistory(r.Context(), usecase.GetHistoryInput{
		Type:      typ,
		AccountID: accountID,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageResponse[*dto.HistoryEntryResponse]{
		Items: dto.HistoryEntriesFromDomain(entries),
		Total: total,
		Page:  page,
		Size:  size,
	})
}
