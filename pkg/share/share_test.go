package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumo-news/resumo/pkg/domain"
)

func TestCopyText(t *testing.T) {
	a := domain.Article{Title: "Chuva em SP", Summary: "Resumo da chuva."}
	assert.Equal(t, "Chuva em SP.\n\nResumo da chuva.", CopyText(a))

	a.Title = "Já termina."
	assert.Equal(t, "Já termina.\n\nResumo da chuva.", CopyText(a))
}

func TestWhatsAppURL(t *testing.T) {
	a := domain.Article{Title: "Copa & Brasil", Summary: "Seleção vence (2x0)!"}
	assert.Equal(t, "*Copa & Brasil.*\n\nSeleção vence (2x0)!\n\n_Via Resumo News_", WhatsAppText(a))

	link := WhatsAppURL(a)
	require.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Copa%20%26%20Brasil.")
	assert.Contains(t, link, "(2x0)!")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, WhatsAppText(a), u.Query().Get("text"))
}

func TestMailtoURL(t *testing.T) {
	a := domain.Article{Title: "Eleições", Summary: "Texto do resumo."}
	link := MailtoURL(a)
	assert.Equal(t, "mailto:?subject=Not%C3%ADcia%3A%20Elei%C3%A7%C3%B5es.&body="+
		"Elei%C3%A7%C3%B5es.%0A%0ATexto%20do%20resumo.%0A%0ALeia%20mais%20no%20Resumo%20News.", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Notícia: Eleições.", q.Get("subject"))
	assert.Equal(t, "Eleições.\n\nTexto do resumo.\n\nLeia mais no Resumo News.", q.Get("body"))
}

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"?&=/#", "%3F%26%3D%2F%23"},
		{"ç", "%C3%A7"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeComponent(tt.in), tt.in)
	}
}

func TestWhatsAppToURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/5511999998888?text=Ol%C3%A1%20mundo", WhatsAppToURL("+55 (11) 99999-8888", "Olá mundo"))
	assert.Equal(t, "https://wa.me/?text=oi", WhatsAppToURL("", "oi"))
}
