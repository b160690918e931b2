package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"it-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	cookies := testutil.LoginAsAdmin(t, db, r)

	w := testutil.DoRequest(r, http.MethodPost, "/api/types", map[string]any{"name": "Ноутбук"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	typeID := int(testutil.ParseResponse(t, w)["id"].(float64))

	w = testutil.DoRequest(r, http.MethodPost, "/api/types", map[string]any{}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Название типа обязательно", testutil.ParseResponse(t, w)["error"])

	w = testutil.DoRequest(r, http.MethodPut, fmt.Sprintf("/api/types/%d", typeID), map[string]any{"name": "Моноблок"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Моноблок", testutil.ParseResponse(t, w)["name"])

	w = testutil.DoRequest(r, http.MethodGet, "/api/types", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.ParseListResponse(t, w), 1)

	w = testutil.DoRequest(r, http.MethodDelete, fmt.Sprintf("/api/types/%d", typeID), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Тип удален", testutil.ParseResponse(t, w)["message"])
}

func TestTypeDeleteInUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	cookies := testutil.LoginAsAdmin(t, db, r)

	typ := testutil.SeedType(t, db, "Ноутбук")
	st := testutil.SeedStatus(t, db, "В работе")

	w := testutil.DoRequest(r, http.MethodPost, "/api/assets", map[string]any{
		"inventory_number": "INV-1",
		"type_id":          typ.ID,
		"status_id":        st.ID,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.DoRequest(r, http.MethodDelete, fmt.Sprintf("/api/types/%d", typ.ID), nil, cookies)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Не удалось удалить тип. Возможно, он используется.", testutil.ParseResponse(t, w)["error"])
}

func TestTypeProperties(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	cookies := testutil.LoginAsAdmin(t, db, r)

	typ := testutil.SeedType(t, db, "Ноутбук")

	w := testutil.DoRequest(r, http.MethodPost, "/api/properties", map[string]any{"name": "Диагональ"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	propID := uint(testutil.ParseResponse(t, w)["id"].(float64))

	w = testutil.DoRequest(r, http.MethodPut, fmt.Sprintf("/api/types/%d/properties", typ.ID), map[string]any{
		"property_ids": []uint{propID},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Свойства типа обновлены", testutil.ParseResponse(t, w)["message"])

	w = testutil.DoRequest(r, http.MethodGet, fmt.Sprintf("/api/types/%d/properties", typ.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	props := testutil.ParseListResponse(t, w)
	require.Len(t, props, 1)
	assert.Equal(t, "Диагональ", props[0]["name"])

	// несуществующее свойство отклоняется целиком
	w = testutil.DoRequest(r, http.MethodPut, fmt.Sprintf("/api/types/%d/properties", typ.ID), map[string]any{
		"property_ids": []uint{propID, 99999},
	}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Некоторые свойства не найдены", testutil.ParseResponse(t, w)["error"])
}

func TestEmployeeCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	cookies := testutil.LoginAsAdmin(t, db, r)

	dept := testutil.SeedDepartment(t, db, "Бухгалтерия")

	w := testutil.DoRequest(r, http.MethodPost, "/api/employees", map[string]any{
		"name":          "Иванов И.И.",
		"department_id": dept.ID,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.ParseResponse(t, w)
	assert.Equal(t, "Бухгалтерия", created["department_name"])
	empID := int(created["id"].(float64))

	w = testutil.DoRequest(r, http.MethodPost, "/api/employees", map[string]any{"name": "Петров"}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Имя и отдел обязательны", testutil.ParseResponse(t, w)["error"])

	w = testutil.DoRequest(r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", empID), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Сотрудник удален", testutil.ParseResponse(t, w)["message"])
}
