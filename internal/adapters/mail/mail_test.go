package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/domain"
)

func TestBuildMessageHeadersAndAttachment(t *testing.T) {
	msg := buildMessage(domain.Email{
		From:        "rodriguezdaniel048@gmail.com",
		To:          []string{"visitor@example.com"},
		Cc:          []string{"rodriguezdaniel048@gmail.com"},
		Subject:     "Hoja de vida",
		HTMLBody:    "<p>Hola</p>",
		Attachments: []domain.Attachment{{Filename: "Hoja-de-vida-Daniel.pdf", Content: []byte("%PDF-1.4")}},
	})

	assert.Equal(t, []string{"visitor@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"rodriguezdaniel048@gmail.com"}, msg.GetHeader("Cc"))
	assert.Equal(t, []string{"Hoja de vida"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Hoja-de-vida-Daniel.pdf")
	assert.Contains(t, out, "text/html")
}

func TestBuildMessageTextOnly(t *testing.T) {
	msg := buildMessage(domain.Email{
		From:     "no-reply@danielrf.com",
		To:       []string{"rodriguezdaniel048@gmail.com"},
		ReplyTo:  "ana@example.com",
		Subject:  "Nuevo mensaje",
		TextBody: "Mensaje: hola",
	})

	assert.Empty(t, msg.GetHeader("Cc"))
	assert.Equal(t, []string{"ana@example.com"}, msg.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Mensaje: hola")
}

func TestNewSMTPMailerRequiresPassword(t *testing.T) {
	_, err := NewSMTPMailer("smtp.gmail.com", 587, "user", "")
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Send(context.Background(), domain.Email{Subject: "a"}))
	require.NoError(t, r.Send(context.Background(), domain.Email{Subject: "a"}))
	assert.Len(t, r.Sent(), 2)

	r.Err = errors.New("535 auth failed")
	assert.Error(t, r.Send(context.Background(), domain.Email{}))
	assert.Len(t, r.Sent(), 2)

	assert.NoError(t, NewLogMailer().Send(context.Background(), domain.Email{Subject: "x"}))
}
