package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prefs []string
		lang  language.Tag
		yes   string
	}{
		{"NoPreference", nil, language.English, "Yes"},
		{"German", []string{"de-CH"}, language.German, "Ja"},
		{"AcceptList", []string{"xx, fr;q=0.9, en;q=0.5"}, language.French, "Oui"},
		{"QualityOrder", []string{"en;q=0.2, xx, de;q=0.8"}, language.German, "Ja"},
		{"UnknownFirstPreference", []string{"xx", "ru"}, language.Russian, "Да"},
		{"Unsupported", []string{"ja"}, language.English, "Yes"},
		{"Garbage", []string{"!!"}, language.English, "Yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(tt.prefs...)
			require.Equal(t, tt.lang, c.Language())
			require.Equal(t, tt.yes, c.T("Yes"))
		})
	}
}

func TestCatalog_UnknownKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Frobnicate", New("ru").T("Frobnicate"))

	var c *Catalog
	require.Equal(t, "Ok", c.T("Ok"))
}
