package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk/internal/handlers/testutil"
	"github.com/orgdesk/orgdesk/internal/models"
)

// Exercises the whole organization/user lifecycle over HTTP: create the
// organization, attach a user, list it, cascade delete, observe the 404.
func TestOrganizationUserFlow(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/organizations", map[string]any{
		"name":  "Acme",
		"email": "a@acme.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var org models.Organization
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &org)
	require.Equal(t, "acme", org.Slug)

	w = env.Request(http.MethodPost, fmt.Sprintf("/api/organizations/%d/users", org.ID), map[string]any{
		"name": "Bo",
		"role": "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var bo models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &bo)
	require.Equal(t, org.ID, bo.OrganizationID)

	w = env.Request(http.MethodGet, fmt.Sprintf("/api/organizations/%d/users", org.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &users)
	require.Len(t, users, 1)
	require.Equal(t, "Bo", users[0].Name)

	w = env.Request(http.MethodDelete, fmt.Sprintf("/api/organizations/%d", org.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.Request(http.MethodGet, fmt.Sprintf("/api/organizations/%d", org.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The cascade removed Bo as well.
	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Where("organization_id = ?", org.ID).Count(&count).Error)
	require.Zero(t, count)
}
