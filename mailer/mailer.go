// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers verification links and confirmation tickets.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds an SMTP mailer.
func New(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// EnviarVerificacao sends the account-verification link.
func (m *Mailer) EnviarVerificacao(ctx context.Context, para, nome, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", para)
	msg.SetHeader("Subject", "Confirme seu cadastro - Arrancada Roraima")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Olá %s,\n\nConfirme seu cadastro clicando no link abaixo:\n\n%s\n\nSe você não criou esta conta, ignore este email.\n",
		nome, link,
	))
	return m.send(ctx, msg)
}

// EnviarIngresso sends the confirmation PDF as an attachment.
func (m *Mailer) EnviarIngresso(ctx context.Context, para string, pdf []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", para)
	msg.SetHeader("Subject", "Inscrição confirmada - Arrancada Roraima")
	msg.SetBody("text/plain",
		"Sua inscrição foi confirmada!\n\nO comprovante com o código de entrada está em anexo. Apresente-o na portaria do evento.\n")
	msg.Attach("comprovante.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(pdf))
		return err
	}))
	return m.send(ctx, msg)
}

// send runs DialAndSend under the caller's deadline; gomail itself has no
// context support.
func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
