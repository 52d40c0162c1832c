// Package privacy implements the PIPL output-masking and elicitation
// layer that sits between tool handlers and the wire.
package privacy

import (
	"regexp"
	"strings"
)

// Masker rewrites personally identifiable information in outbound text.
type Masker struct {
	phone   *regexp.Regexp
	idCard  *regexp.Regexp
	account *regexp.Regexp
	email   *regexp.Regexp
}

// NewMasker compiles the masking patterns.
func NewMasker() *Masker {
	return &Masker{
		// Mainland mobile number, 11 digits starting 13-19.
		phone: regexp.MustCompile(`(1[3-9]\d{9})`),
		// Resident ID, 15 or 18 digits (last may be X).
		idCard: regexp.MustCompile(`([1-9]\d{16}[\dXx]|[1-9]\d{14})`),
		// Bank card / account, 16-19 digits.
		account: regexp.MustCompile(`(\d{16,19})`),
		email:   regexp.MustCompile(`([a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+)`),
	}
}

// MaskText masks phone numbers, ID numbers, account numbers and email
// addresses. Longer patterns run first so an 18-digit ID is not half-eaten
// by the account rule.
func (m *Masker) MaskText(text string) string {
	text = m.idCard.ReplaceAllStringFunc(text, maskIDCard)
	text = m.account.ReplaceAllStringFunc(text, func(s string) string {
		return "**** " + s[len(s)-4:]
	})
	text = m.phone.ReplaceAllStringFunc(text, func(s string) string {
		return s[:3] + "****" + s[7:]
	})
	text = m.email.ReplaceAllStringFunc(text, maskEmail)
	return text
}

func maskIDCard(s string) string {
	switch len(s) {
	case 18:
		return s[:6] + "********" + s[14:]
	case 15:
		return s[:6] + "******" + s[12:]
	default:
		return s[:6] + strings.Repeat("*", len(s)-10) + s[len(s)-4:]
	}
}

func maskEmail(s string) string {
	at := strings.Index(s, "@")
	if at <= 0 {
		return s
	}
	return s[:1] + "***" + s[at:]
}
