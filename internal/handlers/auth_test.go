package handlers_test

import (
	"net/http"
	"testing"

	"it-inventory/internal/models"
	"it-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)
	testutil.SeedUser(t, db, "user1", "Secret99", models.RoleUser)

	w := testutil.DoRequest(r, http.MethodPost, "/api/login", map[string]any{
		"username": "user1",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Неверный логин или пароль", testutil.ParseResponse(t, w)["error"])

	w = testutil.DoRequest(r, http.MethodPost, "/api/login", map[string]any{
		"username": "user1",
		"password": "Secret99",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := testutil.ParseResponse(t, w)
	assert.Equal(t, "user1", res["username"])
	assert.Equal(t, "user", res["role"])
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)

	w := testutil.DoRequest(r, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, testutil.ParseResponse(t, w)["authenticated"])

	cookies := testutil.LoginAsAdmin(t, db, r)
	w = testutil.DoRequest(r, http.MethodGet, "/api/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	res := testutil.ParseResponse(t, w)
	assert.Equal(t, true, res["authenticated"])
	assert.Equal(t, testutil.TestUsername, res["username"])
}

func TestCreateUserAdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupRouter(t, db)

	testutil.SeedUser(t, db, "regular", "Secret99", models.RoleUser)
	cookies := testutil.Login(t, r, "regular", "Secret99")

	w := testutil.DoRequest(r, http.MethodPost, "/api/users", map[string]any{
		"username": "newuser",
		"password": "Secret99",
	}, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Доступ запрещен", testutil.ParseResponse(t, w)["error"])

	admin := testutil.LoginAsAdmin(t, db, r)

	w = testutil.DoRequest(r, http.MethodPost, "/api/users", map[string]any{
		"username": "newuser",
		"password": "Secret99",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "newuser", testutil.ParseResponse(t, w)["username"])

	// дубликат логина
	w = testutil.DoRequest(r, http.MethodPost, "/api/users", map[string]any{
		"username": "newuser",
		"password": "Secret99",
	}, admin)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Пользователь уже существует", testutil.ParseResponse(t, w)["error"])

	// короткий пароль
	w = testutil.DoRequest(r, http.MethodPost, "/api/users", map[string]any{
		"username": "another",
		"password": "123",
	}, admin)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Слишком короткий логин или пароль", testutil.ParseResponse(t, w)["error"])
}
