package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User
	lastUser *models.User
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.users[email]
	return exists, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = len(m.users) + 1
	m.users[user.Email] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepo) GetAllUsersPaginated(_ context.Context, limit, offset int) ([]*models.User, int, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) UpdateUserFields(_ context.Context, id int, input *models.UpdateUserRequest) error {
	return nil
}

func (m *mockUserRepo) UpdateUserPassword(_ context.Context, userID int64, passwordHash string) error {
	return nil
}

func (m *mockUserRepo) DeleteUserByID(_ context.Context, userID int) error {
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	user := &models.User{
		Name:  "Тестовый Пользователь",
		Email: "Test@Example.com",
	}

	err := service.RegisterUser(context.Background(), user, "секретный-пароль")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "секретный-пароль" {
		t.Fatal("пароль сохранён открытым текстом")
	}
	if repo.lastUser.Email != "test@example.com" {
		t.Fatalf("email должен нормализоваться, получено: %s", repo.lastUser.Email)
	}
	if repo.lastUser.Role != "user" {
		t.Fatalf("новому пользователю назначается роль user, получено: %s", repo.lastUser.Role)
	}
}

func TestRegisterUser_WeakPassword(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	err := service.RegisterUser(context.Background(), &models.User{Email: "a@b.com"}, "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("ожидалась ErrWeakPassword, получено: %v", err)
	}
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	repo.users["taken@example.com"] = &models.User{ID: 1, Email: "taken@example.com"}

	err := service.RegisterUser(context.Background(), &models.User{Email: "taken@example.com"}, "секретный-пароль")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("ожидалась ErrEmailTaken, получено: %v", err)
	}
}

func TestLoginUser_Success(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	// создаём пользователя вручную
	hashed, _ := utils.HashPassword("секретный-пароль")
	repo.users["test@example.com"] = &models.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: hashed,
		Role:         "user",
	}

	access, user, err := service.LoginUser(context.Background(), "test@example.com", "секретный-пароль", "mysecret", 15*time.Minute)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if access == "" {
		t.Fatal("токен не сгенерирован")
	}
	if user == nil || user.ID != 1 {
		t.Fatal("не вернулся пользователь")
	}
}

func TestLoginUser_Fail(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("правильный-пароль")
	repo.users["test@example.com"] = &models.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: hashed,
	}

	// Несуществующий email и неверный пароль дают одну и ту же ошибку.
	_, _, err := service.LoginUser(context.Background(), "unknown@example.com", "pass", "secret", time.Minute)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено: %v", err)
	}

	_, _, err2 := service.LoginUser(context.Background(), "test@example.com", "неверный-пароль", "secret", time.Minute)
	if !errors.Is(err2, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено: %v", err2)
	}
}
