package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(tokens *auth.Tokens) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.Use(RequireAdmin(tokens))
	r.GET("/whoami", func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no admin in context")
			return
		}
		c.String(http.StatusOK, admin)
	})
	return r
}

func TestRequireAdminSetsCurrentAdmin(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	r := newGuardedRouter(tokens)

	tok, err := tokens.Issue("carlos")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "carlos" {
		t.Fatalf("expected acting admin carlos, got %q", w.Body.String())
	}
}

func TestRequireAdminRejectsMissingAndBadTokens(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	r := newGuardedRouter(tokens)

	for _, header := range []string{"", "Bearer ", "Bearer garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}
