package ledger_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

func seedHistory(t *testing.T) (*ledger.HistoryUseCase, *memStore) {
	t.Helper()
	uc, store := newLedgerWithMaterial(100)
	store.products["p1"] = entity.Product{ID: "p1", Name: "Pan", Code: "PRD-001"}

	_, err := apply(t, uc, entity.MovementTypeOut, 30)
	require.NoError(t, err)
	_, err = apply(t, uc, entity.MovementTypeIn, 5)
	require.NoError(t, err)
	return ledger.NewHistoryUseCase(&memHistoryRepo{store}), store
}

func TestHistoryList_Global(t *testing.T) {
	uc, _ := seedHistory(t)

	out, err := uc.List(context.Background(), "", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, entity.MovementTypeIn, out.Items[0].Type, "más reciente primero")
	assert.Equal(t, "m1", out.Items[0].MaterialID)
	assert.Empty(t, out.Items[0].ProductID)
}

func TestHistoryList_FiltradoPorItem(t *testing.T) {
	uc, _ := seedHistory(t)
	ctx := context.Background()

	out, err := uc.List(ctx, "m1", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	out, err = uc.List(ctx, "", "p1", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Items, "el producto no tiene movimientos")

	_, err = uc.List(ctx, "m1", "p1", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "material y producto a la vez")
}

func TestHistoryExportCSV(t *testing.T) {
	uc, _ := seedHistory(t)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "cabecera + 2 movimientos")
	assert.Equal(t, []string{"id", "material_id", "product_id", "type", "quantity", "description", "reference", "user_id", "created_at"}, records[0])
	assert.Equal(t, entity.MovementTypeIn, records[1][3], "más reciente primero")
	assert.Equal(t, "m1", records[1][1])
	assert.Equal(t, "5", records[1][4])
}
