package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/services"
)

type mockResetValidator struct {
	rec *models.PasswordResetToken
	err error
}

func (m *mockResetValidator) Validate(_ context.Context, token string) (*models.PasswordResetToken, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rec, nil
}

func postReset(t *testing.T, svc *mockResetValidator, body string) (*httptest.ResponseRecorder, *models.PasswordResetToken, string) {
	t.Helper()

	var rec *models.PasswordResetToken
	var rawBody string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, _ = ResetTokenFromContext(r.Context())
		b, _ := io.ReadAll(r.Body)
		rawBody = string(b)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/password/reset", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	ValidateResetToken(svc)(inner).ServeHTTP(rr, req)
	return rr, rec, rawBody
}

func TestValidateResetToken_MissingToken(t *testing.T) {
	rr, _, _ := postReset(t, &mockResetValidator{}, `{"new_password":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("без токена ожидался 400, получен %d", rr.Code)
	}
}

func TestValidateResetToken_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"не найден", services.ErrTokenNotFound, http.StatusNotFound},
		{"просрочен", services.ErrTokenExpired, http.StatusUnauthorized},
		{"использован", services.ErrTokenUsed, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, _, _ := postReset(t, &mockResetValidator{err: tc.err}, `{"token":"abc"}`)
			if rr.Code != tc.want {
				t.Fatalf("ожидался %d, получен %d", tc.want, rr.Code)
			}
		})
	}
}

func TestValidateResetToken_SuccessAttachesRecordAndRestoresBody(t *testing.T) {
	want := &models.PasswordResetToken{ID: 3, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	body := `{"token":"abc","new_password":"новый-пароль"}`

	rr, rec, rawBody := postReset(t, &mockResetValidator{rec: want}, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("валидный токен должен пропускаться, код %d", rr.Code)
	}
	if rec == nil || rec.ID != 3 || rec.UserID != 7 {
		t.Fatalf("в контексте не та запись: %+v", rec)
	}

	// Хендлер ниже по цепочке читает тело повторно.
	var again struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.Unmarshal([]byte(rawBody), &again); err != nil {
		t.Fatalf("тело не восстановлено: %v", err)
	}
	if again.NewPassword != "новый-пароль" {
		t.Fatal("тело запроса изменилось после гейта")
	}
}
