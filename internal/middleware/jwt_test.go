package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, handled *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*handled = true
		w.WriteHeader(http.StatusOK)
	})
}

func doAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var handled bool
	mw := JWTAuth(testSecret)(protectedHandler(t, &handled))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)
	return rr, handled
}

func TestJWTAuth_MissingToken(t *testing.T) {
	rr, handled := doAuth(t, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался 401, получен %d", rr.Code)
	}
	if handled {
		t.Fatal("хендлер не должен вызываться без токена")
	}
	if !strings.Contains(rr.Body.String(), "токен не предоставлен") {
		t.Fatalf("неожиданное сообщение: %s", rr.Body.String())
	}
}

func TestJWTAuth_BadFormat(t *testing.T) {
	rr, handled := doAuth(t, "Token abc")
	if rr.Code != http.StatusUnauthorized || handled {
		t.Fatalf("ожидался 401 без вызова хендлера, код %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "неверный формат токена") {
		t.Fatalf("неожиданное сообщение: %s", rr.Body.String())
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	token, err := utils.GenerateToken("другой-секрет", 1, "a@b.com", "user", time.Minute)
	if err != nil {
		t.Fatalf("подготовка токена: %v", err)
	}

	rr, handled := doAuth(t, "Bearer "+token)
	if rr.Code != http.StatusUnauthorized || handled {
		t.Fatalf("ожидался 401 без вызова хендлера, код %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "неверный токен") {
		t.Fatalf("неожиданное сообщение: %s", rr.Body.String())
	}
}

func TestJWTAuth_Expired(t *testing.T) {
	token, err := utils.GenerateToken(testSecret, 1, "a@b.com", "user", -time.Minute)
	if err != nil {
		t.Fatalf("подготовка токена: %v", err)
	}

	rr, handled := doAuth(t, "Bearer "+token)
	if rr.Code != http.StatusUnauthorized || handled {
		t.Fatalf("ожидался 401 без вызова хендлера, код %d", rr.Code)
	}
	// Просроченный токен отличим по сообщению от прочих 401.
	if !strings.Contains(rr.Body.String(), "токен просрочен") {
		t.Fatalf("неожиданное сообщение: %s", rr.Body.String())
	}
}

func TestJWTAuth_NotValidYet(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": float64(1),
		"email":   "a@b.com",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"nbf":     time.Now().Add(30 * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("подготовка токена: %v", err)
	}

	rr, handled := doAuth(t, "Bearer "+token)
	if rr.Code != http.StatusUnauthorized || handled {
		t.Fatalf("ожидался 401 без вызова хендлера, код %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ещё не действует") {
		t.Fatalf("неожиданное сообщение: %s", rr.Body.String())
	}
}

func TestJWTAuth_Success(t *testing.T) {
	token, err := utils.GenerateToken(testSecret, 42, "user@example.com", "admin", time.Minute)
	if err != nil {
		t.Fatalf("подготовка токена: %v", err)
	}

	var gotUserID int
	var gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	JWTAuth(testSecret)(inner).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("валидный токен должен пропускаться, код %d: %s", rr.Code, rr.Body.String())
	}
	if gotUserID != 42 {
		t.Fatalf("в контексте ожидался user_id 42, получен %d", gotUserID)
	}
	if gotRole != "admin" {
		t.Fatalf("в контексте ожидалась роль admin, получена %q", gotRole)
	}
}
