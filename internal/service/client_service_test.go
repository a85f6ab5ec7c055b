package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/testutil"
)

// TestClientService_CreateClient tests client registration.
func TestClientService_CreateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a client with generated ID", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db)

		// Execute
		client, err := svc.CreateClient(ctx, request.CreateClientRequest{
			Code:  "ACC-100",
			Name:  "Jane Trader",
			Email: "jane@example.com",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateClient() returned unexpected error: %v", err)
		}
		if client.ID == "" {
			t.Error("Expected generated client ID")
		}

		stored, err := svc.GetClient(client.ID)
		if err != nil {
			t.Fatalf("GetClient() returned unexpected error: %v", err)
		}
		if stored.Code != "ACC-100" {
			t.Errorf("Expected code ACC-100, got %s", stored.Code)
		}
	})

	t.Run("rejects a duplicate account code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db)
		testutil.CreateClient(t, db, "ACC-100")

		_, err := svc.CreateClient(ctx, request.CreateClientRequest{
			Code: "ACC-100",
			Name: "Second Client",
		})

		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})
}

// TestClientService_UpdateClient tests partial updates.
func TestClientService_UpdateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the provided fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db)
		client := testutil.NewClient().WithCode("ACC-100").WithName("Old Name").Build(t, db)

		// Execute
		newName := "New Name"
		updated, err := svc.UpdateClient(ctx, client.ID, request.UpdateClientRequest{Name: &newName})

		// Assert
		if err != nil {
			t.Fatalf("UpdateClient() returned unexpected error: %v", err)
		}
		if updated.Name != "New Name" {
			t.Errorf("Expected updated name, got %s", updated.Name)
		}
		if updated.Code != "ACC-100" {
			t.Errorf("Expected code untouched, got %s", updated.Code)
		}
	})

	t.Run("updating an unknown client is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db)

		name := "Anyone"
		if _, err := svc.UpdateClient(ctx, testutil.MakeID(), request.UpdateClientRequest{Name: &name}); !errors.Is(err, apperrors.ErrClientNotFound) {
			t.Errorf("Expected ErrClientNotFound, got %v", err)
		}
	})
}

// TestClientService_DeleteClient tests client removal.
//
// WHY: A deleted client would orphan its trade history and the fee summaries
// derived from it. Deletion must be refused while any trade references the
// client.
func TestClientService_DeleteClient(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a client without trades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db)
		client := testutil.CreateClient(t, db, "ACC-100")

		if err := svc.DeleteClient(ctx, client.ID); err != nil {
			t.Fatalf("DeleteClient() returned unexpected error: %v", err)
		}

		if _, err := svc.GetClient(client.ID); !errors.Is(err, apperrors.ErrClientNotFound) {
			t.Errorf("Expected ErrClientNotFound after deletion, got %v", err)
		}
	})

	t.Run("refuses to delete a client with recorded trades", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db)
		client := testutil.CreateClient(t, db, "ACC-100")
		stock := testutil.CreateStock(t, db, "AAA")
		testutil.NewTrade(client.ID, stock.ID).Build(t, db)

		// Execute
		err := svc.DeleteClient(ctx, client.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrClientHasTrades) {
			t.Errorf("Expected ErrClientHasTrades, got %v", err)
		}
		if _, err := svc.GetClient(client.ID); err != nil {
			t.Errorf("Expected client to survive the refused deletion, got %v", err)
		}
	})
}
