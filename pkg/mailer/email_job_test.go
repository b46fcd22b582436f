package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, err := Render(EmailJob{
		To:       "a@x.com",
		Template: TemplateWelcome,
		Data:     map[string]any{"Name": "Asha"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Emart", subject)
	assert.Contains(t, text, "Hi Asha,")
}

func TestRenderAccountLocked(t *testing.T) {
	subject, text, err := Render(EmailJob{
		To:       "a@x.com",
		Template: TemplateAccountLocked,
		Data:     map[string]any{"Name": "Asha"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Your account has been locked", subject)
	assert.Contains(t, text, "failed sign-in attempts")
}

func TestRenderPassthrough(t *testing.T) {
	subject, text, err := Render(EmailJob{To: "a@x.com", Subject: "hello", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, "hello", subject)
	assert.Equal(t, "body", text)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render(EmailJob{Template: "password_reset"})
	assert.Error(t, err)
}
