package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/nlplaces/internal/verifier"
)

func TestVerifyCommandStructure(t *testing.T) {
	assert.Equal(t, "verify [dir]", verifyCmd.Use)
	assert.NotNil(t, verifyCmd.Flags().Lookup("expect"))
	assert.Error(t, verifyCmd.Args(verifyCmd, []string{"a", "b"}))
}

func TestRunVerify(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "groningen"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groningen", "LOCATIONS.js"), []byte("LOCATIONS = [\n]\n"), 0644))

	d, err := verifier.Digest(dir)
	require.NoError(t, err)

	origExpect := verifyExpect
	defer func() { verifyExpect = origExpect }()

	var out bytes.Buffer
	verifyCmd.SetOut(&out)
	defer verifyCmd.SetOut(nil)

	verifyExpect = d.SHA256
	require.NoError(t, runVerify(verifyCmd, []string{dir}))
	assert.Contains(t, out.String(), "Files: 1")
	assert.Contains(t, out.String(), "Digest matches")

	out.Reset()
	verifyExpect = strings.Repeat("0", 64)
	err = runVerify(verifyCmd, []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}
