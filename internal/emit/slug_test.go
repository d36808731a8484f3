package emit

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"North Holland", "north-holland"},
		{"Fryslân", "fryslan"},
		{"'s-Gravenhage", "s-gravenhage"},
		{"Bergen (NH.)", "bergen-nh"},
		{"Nuenen, Gerwen en Nederwetten", "nuenen-gerwen-en-nederwetten"},
		{"Ruhr & Rijn", "ruhr-and-rijn"},
		{"Súdwest-Fryslân", "sudwest-fryslan"},
		{"  --Centrum--  ", "centrum"},
		{"IJsselstein", "ijsselstein"},
		{"", SlugFallback},
		{"???", SlugFallback},
		{"日本", SlugFallback},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyInvariants(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"Appingedam", "Den Haag ('s-Gravenhage)", "Caribbean Netherlands", "Œuvre",
		"a--b", "-", "&", "Ünïcödé  Tëst", "Wijk 03 Oost/West", "ß",
	}

	for _, in := range inputs {
		s := Slugify(in)
		assert.NotEmpty(t, s, in)
		assert.Equal(t, strings.ToLower(s), s, in)
		assert.Regexp(t, valid, s, in)
	}
}
