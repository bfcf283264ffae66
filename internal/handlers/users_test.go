package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk/internal/handlers/testutil"
	"github.com/orgdesk/orgdesk/internal/models"
)

func TestUserCreateInOrganization(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Acme")

	w := env.Request(http.MethodPost, fmt.Sprintf("/api/organizations/%d/users", org.ID), map[string]any{
		"name": "Bo",
		"role": "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &user)
	require.NotZero(t, user.ID)
	require.Equal(t, org.ID, user.OrganizationID)
	require.Equal(t, models.RoleAdmin, user.Role)
}

func TestUserCreateUnderMissingOrganization(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/organizations/999/users", map[string]any{
		"name": "Nobody",
		"role": "Admin",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Roles")

	w := env.Request(http.MethodPost, fmt.Sprintf("/api/organizations/%d/users", org.ID), map[string]any{
		"name": "Pat",
		"role": "Manager",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestUserListByOrganization(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Listed")
	env.CreateUser(org.ID, "Ann", models.RoleAdmin)
	env.CreateUser(org.ID, "Ben", models.RoleCoordinator)

	w := env.Request(http.MethodGet, fmt.Sprintf("/api/organizations/%d/users", org.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &users)
	require.Len(t, users, 2)
	require.Equal(t, "Ann", users[0].Name)

	// Missing organization is a 404, not an empty list.
	w = env.Request(http.MethodGet, "/api/organizations/999/users", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserListByOrganizationEmpty(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Empty")

	w := env.Request(http.MethodGet, fmt.Sprintf("/api/organizations/%d/users", org.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &users)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestUserGlobalRoster(t *testing.T) {
	env := testutil.NewEnv(t)

	acme := env.CreateOrganization("Acme")
	globex := env.CreateOrganization("Globex")
	env.CreateUser(acme.ID, "Ann", models.RoleAdmin)
	env.CreateUser(globex.ID, "Gus", models.RoleCoordinator)

	w := env.Request(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var roster []models.UserWithOrganizationName
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &roster)
	require.Len(t, roster, 2)
	require.Equal(t, "Acme", roster[0].OrganizationName)
	require.Equal(t, "Globex", roster[1].OrganizationName)
}

func TestUserGetIncludesOrganization(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Owner")
	user := env.CreateUser(org.ID, "Kay", models.RoleAdmin)

	w := env.Request(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &fetched)
	require.NotNil(t, fetched.Organization)
	require.Equal(t, "Owner", fetched.Organization.Name)

	w = env.Request(http.MethodGet, "/api/users/31337", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserUpdate(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Update")
	user := env.CreateUser(org.ID, "Lee", models.RoleAdmin)

	w := env.Request(http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]any{
		"role": "Co-ordinator",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &updated)
	require.Equal(t, models.RoleCoordinator, updated.Role)
	require.Equal(t, "Lee", updated.Name)

	w = env.Request(http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]any{
		"role": "Manager",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.Request(http.MethodPut, "/api/users/31337", map[string]any{"name": "Ghost"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDelete(t *testing.T) {
	env := testutil.NewEnv(t)

	org := env.CreateOrganization("Remove")
	user := env.CreateUser(org.ID, "Mo", models.RoleCoordinator)

	w := env.Request(http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, "User deleted successfully", resp.Message)

	w = env.Request(http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
