package integration

import (
	"context"
	"testing"

	"github.com/tenco/bankcore/internal/domain"
	"github.com/tenco/bankcore/internal/usecase"
)

func TestHistoryListing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEngine(t)

	e.db.TruncateAll(ctx)
	id := e.seedAccount(ctx, t, "11-22", "1234", 1000, 7)
	otherID := e.seedAccount(ctx, t, "33-44", "5678", 1000, 8)

	// 1000 +500 -200 then transfer 100 out
	if _, err := e.transactionUC.Deposit(ctx, "11-22", 500, 7); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if _, err := e.transactionUC.Withdraw(ctx, "11-22", "1234", 200, 7); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if _, err := e.transactionUC.Transfer(ctx, "11-22", "1234", "33-44", 100, 7); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	t.Run("all entries newest first", func(t *testing.T) {
		entries, total, err := e.transactionUC.GetHistory(ctx, usecase.GetHistoryInput{
			Type: domain.HistoryAll, AccountID: id, Page: 1, Size: 10,
		})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if total != 3 || len(entries) != 3 {
			t.Fatalf("total = %d len = %d, want 3", total, len(entries))
		}

		// transfer, withdrawal, deposit
		if entries[0].WAccount == nil || entries[0].DAccount == nil {
			t.Fatalf("expected transfer first, got %+v", entries[0])
		}
		if entries[1].WAccount == nil || entries[1].DAccount != nil {
			t.Fatalf("expected withdrawal second, got %+v", entries[1])
		}
		if entries[2].DAccount == nil || entries[2].WAccount != nil {
			t.Fatalf("expected deposit last, got %+v", entries[2])
		}

		if entries[0].WAccountNumber != "11-22" || entries[0].DAccountNumber != "33-44" {
			t.Fatalf("expected joined account numbers, got %+v", entries[0])
		}
	})

	t.Run("deposit filter", func(t *testing.T) {
		entries, total, err := e.transactionUC.GetHistory(ctx, usecase.GetHistoryInput{
			Type: domain.HistoryDeposit, AccountID: id, Page: 1, Size: 10,
		})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if total != 1 || len(entries) != 1 {
			t.Fatalf("expected single deposit, got total=%d len=%d", total, len(entries))
		}
		if entries[0].Amount != 500 {
			t.Fatalf("Amount = %d, want 500", entries[0].Amount)
		}
	})

	t.Run("withdrawal filter includes transfer debit", func(t *testing.T) {
		entries, total, err := e.transactionUC.GetHistory(ctx, usecase.GetHistoryInput{
			Type: domain.HistoryWithdrawal, AccountID: id, Page: 1, Size: 10,
		})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if total != 2 || len(entries) != 2 {
			t.Fatalf("expected two withdrawal-side entries, got total=%d len=%d", total, len(entries))
		}
	})

	t.Run("receiving side sees transfer as deposit", func(t *testing.T) {
		entries, total, err := e.transactionUC.GetHistory(ctx, usecase.GetHistoryInput{
			Type: domain.HistoryDeposit, AccountID: otherID, Page: 1, Size: 10,
		})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if total != 1 || entries[0].Amount != 100 {
			t.Fatalf("expected the transfer credit, got total=%d entries=%+v", total, entries)
		}
	})

	t.Run("pagination is stable across repeated reads", func(t *testing.T) {
		first, _, err := e.transactionUC.GetHistory(ctx, usecase.GetHistoryInput{
			Type: domain.HistoryAll, AccountID: id, Page: 1, Size: 2,
		})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		second, _, err := e.transactionUC.GetHistory(ctx, usecase.GetHistoryInput{
			Type: domain.HistoryAll, AccountID: id, Page: 1, Size: 2,
		})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		if len(first) != 2 || len(second) != 2 {
			t.Fatalf("expected two entries per page")
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Fatalf("repeated read differed at %d: %d vs %d", i, first[i].ID, second[i].ID)
			}
		}
	})
}
