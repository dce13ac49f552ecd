package services

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vitalrecife/storefront/internal/models"
)

// GenerateReferralCode builds a code from the uppercase initials of each
// name part followed by a zero-padded suffix in 001..999. intn must return
// a value in [0, n).
func GenerateReferralCode(name string, intn func(n int) int) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	return fmt.Sprintf("%s%03d", b.String(), intn(999)+1)
}

// ReferralLink is the public link a member shares.
func ReferralLink(siteURL, code string) string {
	return strings.TrimRight(siteURL, "/") + "/ref/" + code
}

type ShareLinks struct {
	Code            string `json:"code"`
	Link            string `json:"link"`
	WhatsAppMessage string `json:"whatsappMessage"`
	WhatsAppURL     string `json:"whatsappUrl"`
	EmailSubject    string `json:"emailSubject"`
	EmailBody       string `json:"emailBody"`
	MailtoURL       string `json:"mailtoUrl"`
}

// BuildShareLinks prepares the social and mail deep links for a member.
func BuildShareLinks(siteURL string, u *models.User) ShareLinks {
	link := ReferralLink(siteURL, u.ReferralCode)

	message := "Oi! 🌟 Descobri a Vital Recife Suplementos e quero te indicar!\n\n" +
		"💪 Suplementos de qualidade premium\n" +
		"🎯 Sistema de filiados com cashback\n" +
		"🏆 Programa de gamificação exclusivo\n\n" +
		"Use meu link e ganhe 20% de desconto na primeira compra:\n" + link + "\n\n" +
		"Vale muito a pena! 🚀"

	subject := u.Name + " te indicou a Vital Recife Suplementos!"
	body := "Olá!\n\nQuero te indicar a Vital Recife Suplementos, uma empresa incrível de suplementos premium!\n\n" +
		"🌟 Por que você vai amar:\n" +
		"• Produtos de altíssima qualidade\n" +
		"• Preços competitivos\n" +
		"• Sistema de filiados com ganhos reais\n" +
		"• Programa de gamificação único\n\n" +
		"🎁 Oferta especial para você:\n" +
		"Use meu link de indicação e ganhe 20% de desconto na primeira compra:\n\n" +
		link + "\n\nQualquer dúvida, me chama!\n\nAbraços,\n" + u.Name

	return ShareLinks{
		Code:            u.ReferralCode,
		Link:            link,
		WhatsAppMessage: message,
		WhatsAppURL:     "https://wa.me/?text=" + encodeComponent(message),
		EmailSubject:    subject,
		EmailBody:       body,
		MailtoURL:       "mailto:?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body),
	}
}

// encodeComponent percent-encodes a query component with spaces as %20,
// which mail clients expect.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
