package repository_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trading-Journal-Backend/internal/testutil"
)

func TestTransferRepository_GetTransfers(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransferRepository(db, zerolog.Nop())

	sameDay := testutil.MustDate(t, "2024-01-15")
	a := testutil.NewTransfer().WithDate(sameDay).Build(t, db)
	b := testutil.NewTransfer().WithDate(sameDay).Withdrawal().Build(t, db)
	earliest := testutil.NewTransfer().WithDate(testutil.MustDate(t, "2024-01-01")).Build(t, db)

	transfers, err := repo.GetTransfers(ctx)
	if err != nil {
		t.Fatalf("GetTransfers() returned unexpected error: %v", err)
	}
	if len(transfers) != 3 {
		t.Fatalf("Expected 3 transfers, got %d", len(transfers))
	}

	want := []string{earliest.ID, a.ID, b.ID}
	for i, id := range want {
		if transfers[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, transfers[i].ID)
		}
	}
	if transfers[2].Type != model.TransferTypeWithdrawal {
		t.Errorf("Expected withdrawal last, got %s", transfers[2].Type)
	}
	if transfers[0].Notes != nil {
		t.Errorf("Expected nil notes, got %q", *transfers[0].Notes)
	}
}
