package services

import (
	"context"
	"testing"
	"time"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
	"github.com/eyatrooz/cinemaBooking-Backend/internal/utils"

	"github.com/jackc/pgx/v5"
)

// Мок-репозиторий токенов (заглушка, в памяти)
type mockResetRepo struct {
	byHash  map[string]*models.PasswordResetToken
	nextID  int64
	created int
}

func newMockResetRepo() *mockResetRepo {
	return &mockResetRepo{byHash: make(map[string]*models.PasswordResetToken)}
}

func (m *mockResetRepo) Create(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) (int64, error) {
	m.nextID++
	m.created++
	m.byHash[tokenHash] = &models.PasswordResetToken{
		ID:        m.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return m.nextID, nil
}

func (m *mockResetRepo) GetByHash(_ context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	rec, ok := m.byHash[tokenHash]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rec
	return &cp, nil
}

func (m *mockResetRepo) MarkUsed(_ context.Context, id int64) (int64, error) {
	for _, rec := range m.byHash {
		if rec.ID == id && rec.UsedAt == nil {
			now := time.Now()
			rec.UsedAt = &now
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockResetRepo) ConsumeAndSetPassword(_ context.Context, tokenID, userID int64, passwordHash string) (bool, error) {
	for _, rec := range m.byHash {
		if rec.ID == tokenID && rec.UsedAt == nil {
			now := time.Now()
			rec.UsedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (m *mockResetRepo) InvalidateActiveByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, rec := range m.byHash {
		if rec.UserID == userID && rec.UsedAt == nil {
			now := time.Now()
			rec.UsedAt = &now
			n++
		}
	}
	return n, nil
}

func (m *mockResetRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for hash, rec := range m.byHash {
		if time.Now().After(rec.ExpiresAt) {
			delete(m.byHash, hash)
			n++
		}
	}
	return n, nil
}

type mockUserDirectory struct {
	users map[string]*models.User
}

func (m *mockUserDirectory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

type mockEmailSender struct {
	sentTo   []string
	lastLink string
	fail     error
}

func (m *mockEmailSender) SendPasswordReset(_ context.Context, to, resetLink string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sentTo = append(m.sentTo, to)
	m.lastLink = resetLink
	return nil
}

func newResetService(repo *mockResetRepo, sender *mockEmailSender) (*PasswordResetService, *mockUserDirectory) {
	users := &mockUserDirectory{users: map[string]*models.User{
		"user@example.com": {ID: 7, Email: "user@example.com", Role: "user"},
	}}
	svc := NewPasswordResetService(repo, users, sender, "https://cinema.example.com", time.Hour)
	return svc, users
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	repo := newMockResetRepo()
	sender := &mockEmailSender{}
	svc, _ := newResetService(repo, sender)

	err := svc.RequestReset(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("при неизвестном email ответ должен быть одинаково успешным: %v", err)
	}
	if repo.created != 0 {
		t.Fatal("токен не должен создаваться для несуществующего пользователя")
	}
	if len(sender.sentTo) != 0 {
		t.Fatal("письмо не должно отправляться для несуществующего пользователя")
	}
}

func TestRequestReset_CreatesHashedTokenAndSendsLink(t *testing.T) {
	repo := newMockResetRepo()
	sender := &mockEmailSender{}
	svc, _ := newResetService(repo, sender)

	if err := svc.RequestReset(context.Background(), "  USER@example.com "); err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}
	if repo.created != 1 {
		t.Fatalf("ожидался один созданный токен, получено %d", repo.created)
	}
	if len(sender.sentTo) != 1 || sender.sentTo[0] != "user@example.com" {
		t.Fatalf("письмо отправлено не туда: %v", sender.sentTo)
	}

	// В ссылке лежит открытый токен, в репозитории — только его дайджест.
	var stored *models.PasswordResetToken
	for _, rec := range repo.byHash {
		stored = rec
	}
	if stored == nil {
		t.Fatal("токен не сохранён")
	}
	prefix := "https://cinema.example.com/reset?token="
	if len(sender.lastLink) <= len(prefix) || sender.lastLink[:len(prefix)] != prefix {
		t.Fatalf("неожиданный формат ссылки: %s", sender.lastLink)
	}
	plain := sender.lastLink[len(prefix):]
	if plain == stored.TokenHash {
		t.Fatal("в базе лежит открытый токен вместо дайджеста")
	}
	wantHash, _ := utils.HashToken(plain)
	if wantHash != stored.TokenHash {
		t.Fatal("дайджест в базе не соответствует токену из письма")
	}
	if !stored.ExpiresAt.After(time.Now()) {
		t.Fatal("срок действия токена должен быть в будущем")
	}
}

func TestRequestReset_InvalidatesPreviousTokens(t *testing.T) {
	repo := newMockResetRepo()
	sender := &mockEmailSender{}
	svc, _ := newResetService(repo, sender)

	ctx := context.Background()
	if err := svc.RequestReset(ctx, "user@example.com"); err != nil {
		t.Fatalf("первый запрос: %v", err)
	}
	if err := svc.RequestReset(ctx, "user@example.com"); err != nil {
		t.Fatalf("второй запрос: %v", err)
	}

	active := 0
	for _, rec := range repo.byHash {
		if rec.UsedAt == nil {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("после повторного запроса активным должен остаться один токен, активных: %d", active)
	}
}

func TestRequestReset_EmailFailureStillOK(t *testing.T) {
	repo := newMockResetRepo()
	sender := &mockEmailSender{fail: context.DeadlineExceeded}
	svc, _ := newResetService(repo, sender)

	if err := svc.RequestReset(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("ошибка доставки письма не должна всплывать наружу: %v", err)
	}
	if repo.created != 1 {
		t.Fatal("токен должен быть создан несмотря на ошибку отправки")
	}
}

func TestValidate_NotFound(t *testing.T) {
	svc, _ := newResetService(newMockResetRepo(), &mockEmailSender{})

	if _, err := svc.Validate(context.Background(), "deadbeef"); err != ErrTokenNotFound {
		t.Fatalf("ожидалась ErrTokenNotFound, получено: %v", err)
	}
	if _, err := svc.Validate(context.Background(), ""); err != ErrTokenNotFound {
		t.Fatalf("пустой токен: ожидалась ErrTokenNotFound, получено: %v", err)
	}
}

func TestValidate_ExpiredBeforeUsed(t *testing.T) {
	repo := newMockResetRepo()
	svc, _ := newResetService(repo, &mockEmailSender{})

	// Фиксируем часы сервиса: проверка детерминирована, без wall-clock зазоров.
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, _ := utils.GenerateResetToken()
	hash, _ := utils.HashToken(token)
	used := fixed.Add(-30 * time.Minute)
	repo.byHash[hash] = &models.PasswordResetToken{
		ID:        1,
		UserID:    7,
		TokenHash: hash,
		ExpiresAt: fixed.Add(-time.Minute),
		UsedAt:    &used, // просроченный И использованный
	}

	// Просрочка должна перекрывать used-состояние.
	if _, err := svc.Validate(context.Background(), token); err != ErrTokenExpired {
		t.Fatalf("ожидалась ErrTokenExpired, получено: %v", err)
	}
}

func TestValidate_Used(t *testing.T) {
	repo := newMockResetRepo()
	svc, _ := newResetService(repo, &mockEmailSender{})

	token, _ := utils.GenerateResetToken()
	hash, _ := utils.HashToken(token)
	used := time.Now().Add(-time.Minute)
	repo.byHash[hash] = &models.PasswordResetToken{
		ID:        1,
		UserID:    7,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &used,
	}

	if _, err := svc.Validate(context.Background(), token); err != ErrTokenUsed {
		t.Fatalf("ожидалась ErrTokenUsed, получено: %v", err)
	}
}

func TestValidate_SuccessReturnsOwner(t *testing.T) {
	repo := newMockResetRepo()
	svc, _ := newResetService(repo, &mockEmailSender{})

	token, _ := utils.GenerateResetToken()
	hash, _ := utils.HashToken(token)
	repo.byHash[hash] = &models.PasswordResetToken{
		ID:        42,
		UserID:    7,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	rec, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("валидный токен не прошёл проверку: %v", err)
	}
	if rec.UserID != 7 || rec.ID != 42 {
		t.Fatalf("вернулась не та запись: %+v", rec)
	}
}

func TestReset_Success(t *testing.T) {
	repo := newMockResetRepo()
	svc, _ := newResetService(repo, &mockEmailSender{})

	token, _ := utils.GenerateResetToken()
	hash, _ := utils.HashToken(token)
	repo.byHash[hash] = &models.PasswordResetToken{
		ID:        1,
		UserID:    7,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	rec, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("валидация: %v", err)
	}
	if err := svc.Reset(context.Background(), rec, "новый-длинный-пароль"); err != nil {
		t.Fatalf("сброс пароля: %v", err)
	}
	if repo.byHash[hash].UsedAt == nil {
		t.Fatal("токен должен быть помечен использованным после сброса")
	}
}

func TestReset_WeakPassword(t *testing.T) {
	svc, _ := newResetService(newMockResetRepo(), &mockEmailSender{})

	rec := &models.PasswordResetToken{ID: 1, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	if err := svc.Reset(context.Background(), rec, "1234567"); err != ErrWeakPassword {
		t.Fatalf("ожидалась ErrWeakPassword, получено: %v", err)
	}
}

func TestReset_ConcurrentDuplicateLoses(t *testing.T) {
	repo := newMockResetRepo()
	svc, _ := newResetService(repo, &mockEmailSender{})

	token, _ := utils.GenerateResetToken()
	hash, _ := utils.HashToken(token)
	repo.byHash[hash] = &models.PasswordResetToken{
		ID:        1,
		UserID:    7,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	rec, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("валидация: %v", err)
	}

	if err := svc.Reset(context.Background(), rec, "первый-пароль-ок"); err != nil {
		t.Fatalf("первый сброс должен пройти: %v", err)
	}
	// Второй запрос с той же записью: условное обновление не находит строку.
	if err := svc.Reset(context.Background(), rec, "второй-пароль-ок"); err != ErrTokenUsed {
		t.Fatalf("второй сброс должен получить ErrTokenUsed, получено: %v", err)
	}
}

func TestPurge_RemovesExpiredOnly(t *testing.T) {
	repo := newMockResetRepo()
	svc, _ := newResetService(repo, &mockEmailSender{})

	repo.byHash["old"] = &models.PasswordResetToken{ID: 1, UserID: 7, ExpiresAt: time.Now().Add(-time.Hour)}
	repo.byHash["fresh"] = &models.PasswordResetToken{ID: 2, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}

	n, err := svc.Purge(context.Background())
	if err != nil {
		t.Fatalf("чистка: %v", err)
	}
	if n != 1 {
		t.Fatalf("ожидалось удаление одного токена, удалено %d", n)
	}
	if _, ok := repo.byHash["fresh"]; !ok {
		t.Fatal("живой токен не должен удаляться")
	}
}
