package services

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/config"
)

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) Send(to []string, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

// SendPasswordReset отправляет письмо со ссылкой на сброс пароля.
// Вызывающий обязан глотать ошибку: доставка best-effort.
func (s *EmailService) SendPasswordReset(_ context.Context, to, resetLink string) error {
	body := "Вы запросили сброс пароля.\r\n\r\n" +
		"Перейдите по ссылке (действительна один час, одноразовая):\r\n" +
		resetLink + "\r\n\r\n" +
		"Если вы не запрашивали сброс — просто проигнорируйте это письмо."
	return s.Send([]string{to}, "Сброс пароля", body)
}
