package store_test

import (
	"context"
	"testing"

	"it-inventory/internal/store"
	"it-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChangeListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	typ := testutil.SeedType(t, db, "Ноутбук")
	st := testutil.SeedStatus(t, db, "В работе")
	assets := store.NewAssetStore(db, zap.NewNop())
	changes := store.NewChangeStore(db)

	a := seedAsset(t, assets, "INV-20", typ.ID, st.ID)
	_, err := assets.Update(context.Background(), a.ID, map[string]any{"room": "101"})
	require.NoError(t, err)

	all, err := changes.List(context.Background(), store.ChangeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := changes.List(context.Background(), store.ChangeFilter{Action: "updated"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "room", updated[0].Field)

	byAsset, err := changes.List(context.Background(), store.ChangeFilter{AssetID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, byAsset, 2)

	none, err := changes.List(context.Background(), store.ChangeFilter{Field: "brand"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestChangeMovesProjection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	typ := testutil.SeedType(t, db, "Ноутбук")
	st := testutil.SeedStatus(t, db, "В работе")
	dept := testutil.SeedDepartment(t, db, "Бухгалтерия")
	assets := store.NewAssetStore(db, zap.NewNop())
	changes := store.NewChangeStore(db)

	a := seedAsset(t, assets, "INV-21", typ.ID, st.ID)
	_, err := assets.Update(context.Background(), a.ID, map[string]any{"room": "101"})
	require.NoError(t, err)
	_, err = assets.Update(context.Background(), a.ID, map[string]any{"department_id": float64(dept.ID)})
	require.NoError(t, err)
	// смена бренда в историю перемещений не попадает
	_, err = assets.Update(context.Background(), a.ID, map[string]any{"brand": "HP"})
	require.NoError(t, err)

	moves, err := changes.Moves(context.Background())
	require.NoError(t, err)
	require.Len(t, moves, 2)

	// порядок: свежие записи первыми
	assert.Equal(t, "department", moves[0].MoveType)
	assert.Equal(t, "-", moves[0].FromRoom)
	assert.Equal(t, "Бухгалтерия", moves[0].ToRoom)

	assert.Equal(t, "room", moves[1].MoveType)
	assert.Equal(t, "-", moves[1].FromRoom)
	assert.Equal(t, "101", moves[1].ToRoom)
}
