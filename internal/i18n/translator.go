// Package i18n maps API message keys to user-facing text.
package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

const (
	KeyUnexpected           = "api/unexpected"
	KeyUnauthorized         = "api/unauthorized"
	KeyReducedAlreadyHas    = "api/membership/reduced/alreadyHas"
	KeyPledgeAlreadyPaid    = "api/pledge/alreadyPaid"
	KeyPledgeNotFound       = "api/pledge/notFound"
	KeyCaptchaInvalid       = "api/captcha/invalid"
	KeyInvalidRequest       = "api/request/invalid"
	KeyPackageNotFound      = "api/package/notFound"
	KeyEmailVerifyRequired  = "api/pledge/emailVerify"
	KeyPledgeSubmitted      = "api/pledge/submitted"
	KeyPledgePaymentResumed = "api/pledge/payment/resumed"
)

var messages = map[string]map[string]string{
	"de": {
		KeyUnexpected:           "Ein unerwarteter Fehler ist aufgetreten.",
		KeyUnauthorized:         "Sie sind nicht berechtigt, diese Aktion auszuführen.",
		KeyReducedAlreadyHas:    "Sie haben bereits eine Mitgliedschaft oder einen reduzierten Beitrag.",
		KeyPledgeAlreadyPaid:    "Dieser Beitrag wurde bereits bezahlt.",
		KeyPledgeNotFound:       "Beitrag nicht gefunden.",
		KeyCaptchaInvalid:       "Die Sicherheitsprüfung ist fehlgeschlagen.",
		KeyInvalidRequest:       "Ungültige Anfrage.",
		KeyPackageNotFound:      "Paket nicht gefunden.",
		KeyEmailVerifyRequired:  "Bitte melden Sie sich mit Ihrer E-Mail-Adresse an.",
		KeyPledgeSubmitted:      "Beitrag erfasst.",
		KeyPledgePaymentResumed: "Zahlung kann fortgesetzt werden.",
	},
	"en": {
		KeyUnexpected:           "An unexpected error occurred.",
		KeyUnauthorized:         "You are not allowed to perform this action.",
		KeyReducedAlreadyHas:    "You already have a membership or a reduced pledge.",
		KeyPledgeAlreadyPaid:    "This pledge has already been paid.",
		KeyPledgeNotFound:       "Pledge not found.",
		KeyCaptchaInvalid:       "The security check failed.",
		KeyInvalidRequest:       "Invalid request.",
		KeyPackageNotFound:      "Package not found.",
		KeyEmailVerifyRequired:  "Please sign in with your email address.",
		KeyPledgeSubmitted:      "Pledge submitted.",
		KeyPledgePaymentResumed: "Payment can be resumed.",
	},
}

// Translator is the t(key) function handed to request handling code.
type Translator interface {
	T(key string) string
	Locale() string
}

type Bundle struct {
	uni *ut.UniversalTranslator
}

// NewBundle registers the message catalog. fallback must be "de" or "en".
func NewBundle(fallback string) (*Bundle, error) {
	deLocale, enLocale := de.New(), en.New()

	fallbackLocale := deLocale
	if fallback == "en" {
		fallbackLocale = enLocale
	}

	uni := ut.New(fallbackLocale, deLocale, enLocale)
	for locale, catalog := range messages {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("locale %s is not registered", locale)
		}
		for key, text := range catalog {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s message %s: %w", locale, key, err)
			}
		}
	}

	return &Bundle{uni: uni}, nil
}

// For picks the translator matching an Accept-Language header value.
func (b *Bundle) For(acceptLanguage string) Translator {
	trans, _ := b.uni.FindTranslator(parseAcceptLanguage(acceptLanguage)...)
	return translator{trans: trans}
}

func parseAcceptLanguage(header string) []string {
	var tags []string
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		tag = strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		tags = append(tags, tag)
	}
	return tags
}

type translator struct {
	trans ut.Translator
}

// T returns the message for key, or the key itself when it is unknown.
func (t translator) T(key string) string {
	text, err := t.trans.T(key)
	if err != nil {
		return key
	}
	return text
}

func (t translator) Locale() string {
	return t.trans.Locale()
}
