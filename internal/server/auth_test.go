package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genba-survey/validation-api/internal/config"
	commonhttp "github.com/genba-survey/validation-api/internal/interfaces/http/common"
)

func testServer(configs ...config.JWTConfig) *Server {
	return &Server{
		logger:     log.New(io.Discard, "", 0),
		jwtConfigs: configs,
	}
}

func signToken(t *testing.T, secret []byte, claims authClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func validClaims(issuer string) authClaims {
	return authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:    "管理者",
		Role:    "admin",
		Surveys: []string{"alpha"},
	}
}

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	srv := testServer(config.JWTConfig{Issuer: "genba-survey-auth", Secret: secret})

	var captured *commonhttp.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, ok := commonhttp.PrincipalFromContext(r.Context()); ok {
			captured = &principal
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := srv.authMiddleware(next)

	t.Run("有効なトークン", func(t *testing.T) {
		captured = nil
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, validClaims("genba-survey-auth")))
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "admin-1", captured.ID)
		assert.Equal(t, "admin", captured.Role)
		assert.Equal(t, []string{"alpha"}, captured.Surveys)
	})

	t.Run("ヘッダーなし", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Bearer形式でない", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		req.Header.Set("Authorization", "Basic abc")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("署名が不一致", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other-secret"), validClaims("genba-survey-auth")))
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestParseAuthToken(t *testing.T) {
	primary := config.JWTConfig{Issuer: "genba-survey-auth", Secret: []byte("primary-secret")}
	legacy := config.JWTConfig{Issuer: "validation-dashboard", Secret: []byte("legacy-secret")}

	t.Run("レガシー発行者のトークンも受理", func(t *testing.T) {
		srv := testServer(primary, legacy)
		token := signToken(t, legacy.Secret, validClaims("validation-dashboard"))
		claims, err := srv.parseAuthToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", claims.Subject)
	})

	t.Run("発行者の不一致は拒否", func(t *testing.T) {
		srv := testServer(primary)
		token := signToken(t, primary.Secret, validClaims("someone-else"))
		_, err := srv.parseAuthToken(token)
		assert.Error(t, err)
	})

	t.Run("期限切れは拒否", func(t *testing.T) {
		srv := testServer(primary)
		claims := validClaims("genba-survey-auth")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := srv.parseAuthToken(signToken(t, primary.Secret, claims))
		assert.Error(t, err)
	})

	t.Run("Subject欠落は拒否", func(t *testing.T) {
		srv := testServer(primary)
		claims := validClaims("genba-survey-auth")
		claims.Subject = ""
		_, err := srv.parseAuthToken(signToken(t, primary.Secret, claims))
		assert.Error(t, err)
	})

	t.Run("未知のロールは拒否", func(t *testing.T) {
		srv := testServer(primary)
		claims := validClaims("genba-survey-auth")
		claims.Role = "superuser"
		_, err := srv.parseAuthToken(signToken(t, primary.Secret, claims))
		assert.Error(t, err)
	})

	t.Run("Audience指定時は一致必須", func(t *testing.T) {
		srv := testServer(primary)
		srv.jwtAudience = "validation-dashboard-ui"

		claims := validClaims("genba-survey-auth")
		_, err := srv.parseAuthToken(signToken(t, primary.Secret, claims))
		assert.Error(t, err)

		claims.Audience = jwt.ClaimStrings{"validation-dashboard-ui"}
		parsed, err := srv.parseAuthToken(signToken(t, primary.Secret, claims))
		require.NoError(t, err)
		assert.Equal(t, "admin-1", parsed.Subject)
	})

	t.Run("設定なしはエラー", func(t *testing.T) {
		srv := testServer()
		_, err := srv.parseAuthToken("whatever")
		assert.Error(t, err)
	})
}

func TestWithCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := withCORS([]string{"https://dashboard.example.com"})(next)

	t.Run("許可されたオリジン", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://dashboard.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, "https://dashboard.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("許可されないオリジンにはヘッダーを付けない", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("プリフライトは204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/submissions", nil)
		req.Header.Set("Origin", "https://dashboard.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}
