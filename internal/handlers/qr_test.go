package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"it-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchQR(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	cookies := testutil.LoginAsAdmin(t, db, r)

	typ := testutil.SeedType(t, db, "Ноутбук")
	st := testutil.SeedStatus(t, db, "В работе")

	w := testutil.DoRequest(r, http.MethodPost, "/api/assets", map[string]any{
		"inventory_number": "INV-1",
		"type_id":          typ.ID,
		"status_id":        st.ID,
		"brand":            "Dell",
		"model":            "X1",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	assetID := uint(testutil.ParseResponse(t, w)["id"].(float64))

	// несуществующий ID пропускается, а не валит запрос
	w = testutil.DoRequest(r, http.MethodPost, "/api/qrcodes", map[string]any{
		"ids": []uint{assetID, 99999},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := testutil.ParseListResponse(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, "INV-1", results[0]["inventory_number"])
	assert.Equal(t, "Ноутбук Dell X1", results[0]["full_name"])
	assert.NotEmpty(t, results[0]["qr_base64"])

	w = testutil.DoRequest(r, http.MethodPost, "/api/qrcodes", map[string]any{"ids": []uint{}}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Список ID активов пуст.", testutil.ParseResponse(t, w)["error"])

	w = testutil.DoRequest(r, http.MethodPost, "/api/qrcodes", map[string]any{"ids": "oops"}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Неверный формат данных. Ожидается список ID.", testutil.ParseResponse(t, w)["error"])
}

func TestAssetQRImage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	cookies := testutil.LoginAsAdmin(t, db, r)

	typ := testutil.SeedType(t, db, "Ноутбук")
	st := testutil.SeedStatus(t, db, "В работе")

	w := testutil.DoRequest(r, http.MethodPost, "/api/assets", map[string]any{
		"inventory_number": "INV-2",
		"type_id":          typ.ID,
		"status_id":        st.ID,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	assetID := int(testutil.ParseResponse(t, w)["id"].(float64))

	w = testutil.DoRequest(r, http.MethodGet, fmt.Sprintf("/api/assets/%d/qr", assetID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())

	w = testutil.DoRequest(r, http.MethodGet, "/api/assets/99999/qr", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
