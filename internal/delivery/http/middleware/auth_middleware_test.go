package middleware

import (
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"career-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  bearer   abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	user := uuid.New()

	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/me", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		return c.SendString(UserID(c).String())
	})

	call := func(header string) (int, string) {
		req := httptest.NewRequest("GET", "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	status, body := call("")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "Missing bearer token")

	status, body = call("Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "Invalid token")

	foreign, err := jwt.NewHMACService("other", time.Hour).GenerateAccessToken(user, "")
	require.NoError(t, err)
	status, _ = call("Bearer " + foreign)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	tok, err := svc.GenerateAccessToken(user, "u@example.com")
	require.NoError(t, err)
	status, body = call("Bearer " + tok)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, user.String(), body)
}
