package integration

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
)

func TestReverseEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	cash := env.DB.CreateTestAccount(ctx, "cash", domain.ClassificationAsset, "USD")
	revenue := env.DB.CreateTestAccount(ctx, "revenue", domain.ClassificationRevenue, "USD")

	var txn dto.TransactionResponse
	rec := env.doJSON(t, http.MethodPost, "/api/v1/transactions/", dto.PostTransactionRequest{
		Description: "sale",
		Entries: []dto.EntryItem{
			{AccountID: cash.ID, Amount: decimal.RequireFromString("80.00"), Direction: "debit"},
			{AccountID: revenue.ID, Amount: decimal.RequireFromString("80.00"), Direction: "credit"},
		},
	}, &txn)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, txn.Entries, 2)

	debitEntry := txn.Entries[0]
	if debitEntry.Direction != "debit" {
		debitEntry = txn.Entries[1]
	}

	var reversal dto.TransactionResponse
	rec = env.doJSON(t, http.MethodPost, "/api/v1/entries/"+debitEntry.ID+"/reverse", dto.ReverseRequest{
		Reason: "duplicate charge",
	}, &reversal)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, reversal.Entries, 1)
	assert.Equal(t, dto.StatusPosted, reversal.Status)

	leg := reversal.Entries[0]
	assert.Equal(t, "credit", leg.Direction, "reversal must flip the direction")
	assert.True(t, leg.Amount.Equal(debitEntry.Amount))
	require.NotNil(t, leg.Reverses)
	assert.Equal(t, debitEntry.ID, *leg.Reverses)

	t.Run("balance nets to zero", func(t *testing.T) {
		var balance dto.BalanceResponse
		rec := env.doJSON(t, http.MethodGet, "/api/v1/accounts/"+cash.ID+"/balance", nil, &balance)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, balance.Balance.IsZero(), "expected zero, got %s", balance.Balance)
	})

	t.Run("reversals are listed", func(t *testing.T) {
		var list dto.ListEntriesResponse
		rec := env.doJSON(t, http.MethodGet, "/api/v1/entries/"+debitEntry.ID+"/reversals", nil, &list)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, list.Entries, 1)
		assert.Equal(t, leg.ID, list.Entries[0].ID)
	})

	t.Run("original transaction is untouched", func(t *testing.T) {
		var got dto.TransactionResponse
		rec := env.doJSON(t, http.MethodGet, "/api/v1/transactions/"+txn.ID, nil, &got)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, got.Entries, 2)
		assert.Equal(t, dto.StatusPosted, got.Status)
	})
}

func TestReverseTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	cash := env.DB.CreateTestAccount(ctx, "cash", domain.ClassificationAsset, "USD")
	revenue := env.DB.CreateTestAccount(ctx, "revenue", domain.ClassificationRevenue, "USD")

	var txn dto.TransactionResponse
	rec := env.doJSON(t, http.MethodPost, "/api/v1/transactions/", dto.PostTransactionRequest{
		Entries: []dto.EntryItem{
			{AccountID: cash.ID, Amount: decimal.RequireFromString("30.00"), Direction: "debit"},
			{AccountID: revenue.ID, Amount: decimal.RequireFromString("30.00"), Direction: "credit"},
		},
	}, &txn)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reversal dto.TransactionResponse
	rec = env.doJSON(t, http.MethodPost, "/api/v1/transactions/"+txn.ID+"/reverse", dto.ReverseRequest{
		Reason: "order cancelled",
	}, &reversal)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, reversal.Entries, 2)

	for _, id := range []string{cash.ID, revenue.ID} {
		var balance dto.BalanceResponse
		rec := env.doJSON(t, http.MethodGet, "/api/v1/accounts/"+id+"/balance", nil, &balance)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, balance.Balance.IsZero(), "account %s should net to zero, got %s", id, balance.Balance)
	}
}

func TestReverseDraftRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	cash := env.DB.CreateTestAccount(ctx, "cash", domain.ClassificationAsset, "USD")

	var draft dto.TransactionResponse
	rec := env.doJSON(t, http.MethodPost, "/api/v1/transactions/drafts", dto.CreateDraftRequest{}, &draft)
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry dto.EntryResponse
	rec = env.doJSON(t, http.MethodPost, "/api/v1/transactions/"+draft.ID+"/entries", dto.EntryItem{
		AccountID: cash.ID, Amount: decimal.RequireFromString("5.00"), Direction: "debit",
	}, &entry)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/v1/entries/"+entry.ID+"/reverse", dto.ReverseRequest{}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "draft entries must not be reversible")

	rec = env.doJSON(t, http.MethodPost, "/api/v1/transactions/"+draft.ID+"/reverse", dto.ReverseRequest{}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
