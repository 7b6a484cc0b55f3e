package utils

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("ожидалось 64 hex-символа, получено %d", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("токен не является hex-строкой: %v", err)
	}

	other, _ := GenerateResetToken()
	if token == other {
		t.Fatal("два вызова подряд вернули одинаковый токен")
	}
}

func TestHashToken(t *testing.T) {
	h1, err := HashToken("abc123")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	h2, _ := HashToken("abc123")
	if h1 != h2 {
		t.Fatal("дайджест должен быть детерминированным")
	}
	if h1 == "abc123" {
		t.Fatal("дайджест совпал со входом")
	}

	h3, _ := HashToken("abc124")
	if h1 == h3 {
		t.Fatal("разные входы дали одинаковый дайджест")
	}

	if len(h1) != 64 {
		t.Fatalf("SHA-256 в hex — 64 символа, получено %d", len(h1))
	}
}

func TestHashToken_Empty(t *testing.T) {
	if _, err := HashToken(""); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("ожидалась ErrEmptyToken, получено: %v", err)
	}
}
