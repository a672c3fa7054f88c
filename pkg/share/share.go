// Package share builds the texts and links used to share an article.
package share

import (
	"net/url"
	"strings"

	"github.com/resumo-news/resumo/pkg/domain"
)

const (
	whatsAppBase   = "https://wa.me/?text="
	whatsAppFooter = "_Via Resumo News_"
	mailFooter     = "Leia mais no Resumo News."
	mailSubject    = "Notícia: "
)

// characters kept as-is by browsers' encodeURIComponent but escaped by url.QueryEscape
var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%2A", "*", "%27", "'", "%28", "(", "%29", ")")

// CopyText is the clipboard text of an article
func CopyText(a domain.Article) string {
	return a.DisplayTitle() + "\n\n" + a.Summary
}

// WhatsAppText is the message text with the bold title and the signature
func WhatsAppText(a domain.Article) string {
	return "*" + a.DisplayTitle() + "*\n\n" + a.Summary + "\n\n" + whatsAppFooter
}

// WhatsAppURL is the wa.me link prefilled with the message text
func WhatsAppURL(a domain.Article) string {
	return whatsAppBase + EncodeComponent(WhatsAppText(a))
}

// WhatsAppToURL is the wa.me link addressed to a phone number, non-digits are dropped from the number
func WhatsAppToURL(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return whatsAppBase + EncodeComponent(text)
	}
	return "https://wa.me/" + digits + "?text=" + EncodeComponent(text)
}

// MailtoURL is the mailto link with subject and body prefilled
func MailtoURL(a domain.Article) string {
	subject := mailSubject + a.DisplayTitle()
	body := a.DisplayTitle() + "\n\n" + a.Summary + "\n\n" + mailFooter
	return "mailto:?subject=" + EncodeComponent(subject) + "&body=" + EncodeComponent(body)
}

// EncodeComponent escapes s the same way as javascript encodeURIComponent
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
