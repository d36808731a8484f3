package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommandStructure(t *testing.T) {
	assert.Equal(t, "generate", generateCmd.Use)
	assert.NotEmpty(t, generateCmd.Short)
	assert.Contains(t, generateCmd.Long, "Example:")
	assert.Contains(t, generateCmd.Long, "nlplaces generate")
	assert.NotNil(t, generateCmd.RunE)
}

func TestRunGenerate(t *testing.T) {
	root := withTestEnv(t)

	var out bytes.Buffer
	generateCmd.SetOut(&out)
	defer generateCmd.SetOut(nil)

	require.NoError(t, runGenerate(generateCmd, nil))

	data, err := os.ReadFile(filepath.Join(root, "groningen", "appingedam", "LOCATIONS.js"))
	require.NoError(t, err)
	assert.Equal(t, "LOCATIONS = [\n  \"Centrum, Appingedam, Groningen, Netherlands\"\n]\n", string(data))

	data, err = os.ReadFile(filepath.Join(root, "friesland", "sudwest-fryslan", "LOCATIONS.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Sneek, Súdwest-Fryslân, Friesland, Netherlands"`)

	assert.Contains(t, out.String(), "=== Generate Complete ===")
	assert.Contains(t, out.String(), "Files written: 2")
	assert.Contains(t, out.String(), "SHA256:")
}

func TestRunGenerate_UnresolvedMunicipality(t *testing.T) {
	root := withTestEnv(t)
	stub := newFetcher(nil).(stubFetcher)
	for url, body := range stub {
		if body == wikiBody {
			stub[url] = `<table class="wikitable"><tr><th>Gemeente</th><th>Provincie</th></tr></table>`
		}
	}
	// Appingedam still resolves through its override; Súdwest-Fryslân does not.

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing province mapping for: Súdwest-Fryslân")

	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr), "no output may be written on reconciliation failure")
}
