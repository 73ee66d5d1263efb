package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundle_For(t *testing.T) {
	bundle, err := NewBundle("de")
	require.NoError(t, err)

	tests := []struct {
		header string
		locale string
	}{
		{header: "", locale: "de"},
		{header: "en", locale: "en"},
		{header: "en-US,en;q=0.9", locale: "en"},
		{header: "fr-CH, de;q=0.8", locale: "de"},
		{header: "*", locale: "de"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.locale, bundle.For(tt.header).Locale(), tt.header)
	}
}

func TestTranslator_T(t *testing.T) {
	bundle, err := NewBundle("en")
	require.NoError(t, err)

	assert.Equal(t, "An unexpected error occurred.", bundle.For("").T(KeyUnexpected))
	assert.Equal(t, "Dieser Beitrag wurde bereits bezahlt.", bundle.For("de").T(KeyPledgeAlreadyPaid))
	assert.Equal(t, "api/unknown", bundle.For("de").T("api/unknown"))
}

func TestMessagesCoverEveryKeyInEveryLocale(t *testing.T) {
	for key := range messages["de"] {
		assert.Contains(t, messages["en"], key)
	}
	assert.Len(t, messages["en"], len(messages["de"]))
}
