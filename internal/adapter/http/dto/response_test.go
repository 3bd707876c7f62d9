package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/tenco/bankcore/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestAccountFromDomain(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	account := &domain.Account{
		ID:        3,
		Number:    "11-22",
		Password:  "$2a$10$secret",
		Balance:   1550,
		UserID:    7,
		CreatedAt: created,
	}

	resp := AccountFromDomain(account)

	if resp.ID != 3 || resp.Number != "11-22" || resp.UserID != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Balance.String() != "15.5" {
		t.Fatalf("Balance = %s, want 15.5", resp.Balance)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatal("credential hash leaked into response")
	}
}

func TestHistoryEntryFromDomain_DepositOnly(t *testing.T) {
	entry := &domain.HistoryEntry{
		ID:             1,
		Reference:      "01J0000000000000000000J9A1",
		Amount:         500,
		DBalance:       int64Ptr(1500),
		DAccount:       int64Ptr(3),
		DAccountNumber: "11-22",
	}

	resp := HistoryEntryFromDomain(entry)

	if resp.DepositBalance == nil || resp.DepositBalance.String() != "15" {
		t.Fatalf("DepositBalance = %v, want 15", resp.DepositBalance)
	}
	if resp.DepositAccount != "11-22" {
		t.Fatalf("DepositAccount = %s, want 11-22", resp.DepositAccount)
	}
	if resp.WithdrawalBalance != nil || resp.WithdrawalAccount != "" {
		t.Fatalf("expected empty withdrawal side, got %+v", resp)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "withdrawal_balance") {
		t.Fatal("expected withdrawal side omitted from JSON")
	}
}

func TestHistoryEntryFromDomain_Transfer(t *testing.T) {
	entry := &domain.HistoryEntry{
		ID:             2,
		Reference:      "01J0000000000000000000J9A2",
		Amount:         300,
		WBalance:       int64Ptr(700),
		WAccount:       int64Ptr(1),
		WAccountNumber: "11-22",
		DBalance:       int64Ptr(500),
		DAccount:       int64Ptr(2),
		DAccountNumber: "33-44",
	}

	resp := HistoryEntryFromDomain(entry)

	if resp.WithdrawalBalance == nil || resp.WithdrawalBalance.String() != "7" {
		t.Fatalf("WithdrawalBalance = %v, want 7", resp.WithdrawalBalance)
	}
	if resp.DepositBalance == nil || resp.DepositBalance.String() != "5" {
		t.Fatalf("DepositBalance = %v, want 5", resp.DepositBalance)
	}
	if resp.WithdrawalAccount != "11-22" || resp.DepositAccount != "33-44" {
		t.Fatalf("unexpected account numbers: %+v", resp)
	}
}
