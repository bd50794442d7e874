package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		msg       string
		challenge bool
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "incorrect username or password", true},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "could not validate user's credentials", true},
		{"wrapped invalid token", fmt.Errorf("decode: %w", domain.ErrInvalidToken), http.StatusUnauthorized, "could not validate user's credentials", true},
		{"role error", &domain.RoleError{Role: domain.RoleUser}, http.StatusForbidden, "user with role User not permitted to perform this action", false},
		{"username taken", domain.ErrUsernameTaken, http.StatusBadRequest, "username taken, please try again", false},
		{"id taken", domain.ErrUserIDTaken, http.StatusBadRequest, "user id taken", false},
		{"missing field", domain.ErrMissingField, http.StatusBadRequest, domain.ErrMissingField.Error(), false},
		{"password too long", fmt.Errorf("create: %w", domain.ErrPasswordTooLong), http.StatusBadRequest, domain.ErrPasswordTooLong.Error(), false},
		{"not found", fmt.Errorf("get: %w", domain.ErrUserNotFound), http.StatusNotFound, "user not found", false},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload", false},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/user/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
			got := rec.Header().Get(echo.HeaderWWWAuthenticate)
			if tc.challenge && got != "Bearer" {
				t.Fatalf("expected bearer challenge, got %q", got)
			}
			if !tc.challenge && got != "" {
				t.Fatalf("unexpected challenge %q", got)
			}
		})
	}
}

func TestHTTPErrorHandler_LogsUnexpected(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/user/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(errors.New("server selection timeout"), c)

	if !bytes.Contains(buf.Bytes(), []byte("server selection timeout")) {
		t.Fatalf("expected cause in log, got %s", buf.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("server selection timeout")) {
		t.Fatalf("cause leaked to client: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUserNotFound, c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected untouched 204, got %d", rec.Code)
	}
}
