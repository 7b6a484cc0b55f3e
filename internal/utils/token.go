package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrEmptyToken возвращается хешером на пустой вход.
var ErrEmptyToken = errors.New("токен для хеширования пуст")

// GenerateResetToken генерирует криптостойкий токен сброса пароля:
// 32 случайных байта в hex — 64 символа, 256 бит энтропии.
func GenerateResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// HashToken считает SHA-256 дайджест токена. В БД хранится только дайджест,
// открытый токен никуда не пишется; сравнение всегда hash-против-hash.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:]), nil
}
