package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Usernames are matched case-insensitively.
	admin := app.login(t, "ADMIN", adminPassword)
	assert.True(t, admin.User.IsAdmin)

	status := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": adminUsername,
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var verified struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	status = app.do(t, http.MethodPost, "/api/auth/verify", admin.Token, nil, &verified)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, admin.User.ID, verified.User.ID)

	t.Run("cookie token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, app.Server.URL+"/api/auth/verify", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: admin.Token})

		resp, err := app.Client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodPost, "/api/auth/verify", "", nil, nil))
	})
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	admin := app.login(t, adminUsername, adminPassword)
	alice := app.createEmployee(t, admin.Token, "Alice", "alice")

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/api/admin/users", alice.Token, nil, nil))
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/admin/users", admin.Token, nil, nil))

	// Usernames are unique regardless of case.
	status := app.do(t, http.MethodPost, "/api/admin/users", admin.Token, map[string]any{
		"name":     "Other Alice",
		"username": "ALICE",
		"password": "secret",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
}
