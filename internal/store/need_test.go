package store_test

import (
	"context"
	"testing"
	"time"

	"it-inventory/internal/models"
	"it-inventory/internal/store"
	"it-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNeed(t *testing.T, db *gorm.DB, s *store.NeedStore, deptID, typeID uint, status string) *models.Need {
	t.Helper()
	n := &models.Need{
		DepartmentID: deptID,
		AssetTypeID:  typeID,
		Quantity:     2,
		ReasonDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
	require.NoError(t, s.Create(context.Background(), n))
	return n
}

func TestNeedUpdateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dept := testutil.SeedDepartment(t, db, "Бухгалтерия")
	typ := testutil.SeedType(t, db, "Принтер")
	needs := store.NewNeedStore(db)

	n := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")

	_, err := needs.Update(context.Background(), n.ID, map[string]any{
		"quantity": float64(-5),
		"status":   "  ",
	})
	var vErr *store.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Ошибка в данных", vErr.Message)
	assert.Equal(t, "Количество должно быть положительным", vErr.Fields["quantity"])
	assert.Equal(t, "Статус не может быть пустым", vErr.Fields["status"])

	// строка осталась нетронутой
	got, err := needs.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "Новая", got.Status)
}

func TestNeedUpdateNote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dept := testutil.SeedDepartment(t, db, "Бухгалтерия")
	typ := testutil.SeedType(t, db, "Принтер")
	needs := store.NewNeedStore(db)

	n := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")

	got, err := needs.Update(context.Background(), n.ID, map[string]any{"note": "  срочно  "})
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "срочно", *got.Note)

	// пустая заметка обнуляется
	got, err = needs.Update(context.Background(), n.ID, map[string]any{"note": "   "})
	require.NoError(t, err)
	assert.Nil(t, got.Note)
}

func TestNeedBatchDeleteCountsActualRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dept := testutil.SeedDepartment(t, db, "Бухгалтерия")
	typ := testutil.SeedType(t, db, "Принтер")
	needs := store.NewNeedStore(db)

	a := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")
	b := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")
	c := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")

	// несуществующий ID молча пропускается
	count, err := needs.BatchDelete(context.Background(), []uint{a.ID, b.ID, 99999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	rest, err := needs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, c.ID, rest[0].ID)
}

func TestNeedBatchUpdateStatusCountsActualRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dept := testutil.SeedDepartment(t, db, "Бухгалтерия")
	typ := testutil.SeedType(t, db, "Принтер")
	needs := store.NewNeedStore(db)

	a := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")
	b := seedNeed(t, db, needs, dept.ID, typ.ID, "Новая")

	count, err := needs.BatchUpdateStatus(context.Background(), []uint{a.ID, b.ID, 99999}, "Закуплено")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	got, err := needs.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Закуплено", got.Status)
}

func TestNeedDeleteNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	needs := store.NewNeedStore(db)

	err := needs.Delete(context.Background(), 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
