package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
)

type mockAccountReader struct {
	users map[int]*models.User
}

func (m *mockAccountReader) GetUserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func callRequireRole(t *testing.T, users *mockAccountReader, userID int, withIdentity bool) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()

	var account *models.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, _ = AccountFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	if withIdentity {
		req = req.WithContext(context.WithValue(req.Context(), ContextUserID, userID))
	}
	rr := httptest.NewRecorder()
	RequireRole(users, "admin")(inner).ServeHTTP(rr, req)
	return rr, account
}

func TestRequireRole_NoIdentity(t *testing.T) {
	users := &mockAccountReader{users: map[int]*models.User{}}
	rr, _ := callRequireRole(t, users, 0, false)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("без аутентификации ожидался 401, получен %d", rr.Code)
	}
}

func TestRequireRole_AccountMissing(t *testing.T) {
	users := &mockAccountReader{users: map[int]*models.User{}}
	rr, _ := callRequireRole(t, users, 99, true)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("для удалённого аккаунта ожидался 404, получен %d", rr.Code)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	users := &mockAccountReader{users: map[int]*models.User{
		5: {ID: 5, Role: "user"},
	}}
	rr, _ := callRequireRole(t, users, 5, true)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("для роли user ожидался 403, получен %d", rr.Code)
	}
}

func TestRequireRole_Admin(t *testing.T) {
	users := &mockAccountReader{users: map[int]*models.User{
		// Роль в БД решает, даже если клеймы говорят другое.
		7: {ID: 7, Role: "admin", Email: "admin@example.com"},
	}}
	rr, account := callRequireRole(t, users, 7, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("админ должен проходить, код %d: %s", rr.Code, rr.Body.String())
	}
	if account == nil || account.ID != 7 {
		t.Fatal("запись аккаунта должна попадать в контекст")
	}
}
