package services

import "errors"

// Закрытый набор доменных ошибок. Хендлеры сопоставляют их с HTTP-статусами
// через errors.Is — ни одна проверка не делается по тексту сообщения.
var (
	ErrTokenNotFound      = errors.New("токен сброса не найден")
	ErrTokenExpired       = errors.New("токен сброса просрочен")
	ErrTokenUsed          = errors.New("токен сброса уже использован")
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrEmailTaken         = errors.New("адрес электронной почты уже зарегистрирован")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrWeakPassword       = errors.New("пароль слишком короткий")
	ErrMovieNotFound      = errors.New("фильм не найден")
	ErrHallNotFound       = errors.New("зал не найден")
)
