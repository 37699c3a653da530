package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "pantry-test-secret"

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newValidator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(testSecret, "")
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestJWTValidatorAcceptsValidToken(t *testing.T) {
	v := newValidator(t)
	token := signToken(t, Claims{
		Roles:            []string{"Pantry-Admin"},
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})

	claims, err := v.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Fatalf("unexpected subject %q", claims.UserID())
	}
	if claims.SessionID == "" {
		t.Fatal("expected derived session id")
	}
	if !claims.HasAnyRole(RoleAdmin, RolePantryAdmin) {
		t.Fatalf("expected pantry-admin role match, roles %v", claims.Roles)
	}
	if claims.HasAnyRole(RoleAdmin) {
		t.Fatal("did not expect admin role")
	}
}

func TestJWTValidatorRejects(t *testing.T) {
	v := newValidator(t)
	v.now = func() time.Time { return time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC) }

	expired := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Date(2029, time.December, 31, 0, 0, 0, 0, time.UTC)),
	}})
	noSubject := signToken(t, Claims{SessionID: "s1"})
	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte("other"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: " ", want: ErrMissingToken},
		{name: "garbage", token: "not-a-jwt", want: ErrInvalidToken},
		{name: "expired", token: expired, want: ErrInvalidToken},
		{name: "missing subject", token: noSubject, want: ErrInvalidToken},
		{name: "wrong key", token: wrongKey, want: ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Validate(tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewJWTValidatorRejectsBadPEM(t *testing.T) {
	if _, err := NewJWTValidator("", "-----BEGIN PUBLIC KEY-----\nnope\n-----END PUBLIC KEY-----"); err == nil {
		t.Fatal("expected error for malformed public key")
	}
}

func TestExtractToken(t *testing.T) {
	if got := ExtractBearerToken("bearer abc "); got != "abc" {
		t.Fatalf("unexpected token %q", got)
	}
	if got := ExtractBearerToken("Basic abc"); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/ws/pantries/1?token=query-token", nil)
	if got := ExtractToken(req, ""); got != "query-token" {
		t.Fatalf("expected query token, got %q", got)
	}
	req.Header.Set("Authorization", "Bearer header-token")
	if got := ExtractToken(req, ""); got != "header-token" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestRequireRoles(t *testing.T) {
	v := newValidator(t)
	admin := signToken(t, Claims{Roles: []string{RoleAdmin}, RegisteredClaims: jwt.RegisteredClaims{Subject: "a"}})
	donor := signToken(t, Claims{Roles: []string{RoleDonor}, RegisteredClaims: jwt.RegisteredClaims{Subject: "d"}})

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, claims.UserID())
	}, RequireRoles(v, RoleAdmin))

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{name: "missing", status: http.StatusUnauthorized},
		{name: "forbidden", token: donor, status: http.StatusForbidden},
		{name: "allowed", token: admin, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestOptionalClaims(t *testing.T) {
	v := newValidator(t)
	donor := signToken(t, Claims{Roles: []string{RoleDonor}, RegisteredClaims: jwt.RegisteredClaims{Subject: "d"}})

	e := echo.New()
	e.GET("/pantry", func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, claims.UserID())
	}, OptionalClaims(v))

	cases := []struct {
		name   string
		token  string
		status int
		body   string
	}{
		{name: "anonymous", status: http.StatusOK, body: "anonymous"},
		{name: "valid", token: donor, status: http.StatusOK, body: "d"},
		{name: "invalid", token: "garbage", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/pantry", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("expected body %q, got %q", tc.body, rec.Body.String())
			}
		})
	}
}
