package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileHandler(t *testing.T) {
	app := setupTestApp(t)
	token, profileID := signupTestUser(t, app)

	t.Run("reads any profile", func(t *testing.T) {
		_, otherID := signupUser(t, app, "other@example.com", "secret123")

		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/profile/%d", otherID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := decodeObject(t, resp)
		assert.Equal(t, "other", profile["name"])
	})

	t.Run("not found", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/profile/4242", token, nil)
		assertErrorResponse(t, resp, http.StatusNotFound, "A profile with an id of 4242 was not found.")
	})

	t.Run("own profile", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/profile/%d", profileID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := decodeObject(t, resp)
		assert.Equal(t, float64(profileID), profile["id"])
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	app := setupTestApp(t)
	token, profileID := signupTestUser(t, app)

	t.Run("not owner", func(t *testing.T) {
		otherToken, _ := signupUser(t, app, "intruder@example.com", "secret123")

		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/profile/%d", profileID), otherToken,
			map[string]any{"name": "hijacked"})
		assertErrorResponse(t, resp, http.StatusForbidden,
			"Access to that post is not allowed from this account.")
	})

	t.Run("ownership failure wins over bad fields", func(t *testing.T) {
		otherToken, _ := signupUser(t, app, "intruder2@example.com", "secret123")

		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/profile/%d", profileID), otherToken,
			map[string]any{})
		assertErrorResponse(t, resp, http.StatusForbidden,
			"Access to that post is not allowed from this account.")
	})

	t.Run("name chain", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/profile/%d", profileID), token,
			map[string]any{})
		assertErrorResponse(t, resp, http.StatusBadRequest, "Name must exist.")

		// Whitespace-only fails the presence check, not the blank check.
		resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/profile/%d", profileID), token,
			map[string]any{"name": "   "})
		assertErrorResponse(t, resp, http.StatusBadRequest, "Name must exist.")
	})

	t.Run("bad website", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/profile/%d", profileID), token,
			map[string]any{"name": "tester", "website": "not a url"})
		assertErrorResponse(t, resp, http.StatusBadRequest, "Website must be a valid URL.")
	})

	t.Run("success", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/profile/%d", profileID), token,
			map[string]any{
				"name":    "Tester Prime",
				"about":   "writes tests",
				"website": "https://example.com",
			})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := decodeObject(t, resp)
		assert.Equal(t, "Tester Prime", profile["name"])
		assert.Equal(t, "writes tests", profile["about"])
		assert.Equal(t, "https://example.com", profile["website"])
	})
}

func TestDeleteProfileHandler(t *testing.T) {
	app := setupTestApp(t)
	token, profileID := signupTestUser(t, app)

	t.Run("not owner includes missing profile", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, "/profile/4242", token, nil)
		assertErrorResponse(t, resp, http.StatusForbidden,
			"Access to that post is not allowed from this account.")
	})

	t.Run("returns the deleted profile", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/profile/%d", profileID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := decodeObject(t, resp)
		assert.Equal(t, float64(profileID), profile["id"])

		resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/profile/%d", profileID), token, nil)
		assertErrorResponse(t, resp, http.StatusNotFound,
			fmt.Sprintf("A profile with an id of %d was not found.", profileID))
	})
}

// signupTestUser registers the default account used across profile tests.
func signupTestUser(t *testing.T, app *fiber.App) (string, uint) {
	t.Helper()
	return signupUser(t, app, "tester@example.com", "secret123")
}
