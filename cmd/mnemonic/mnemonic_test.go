package mnemonic_test

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/cmd/mnemonic"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

func pipeInput(t *testing.T, line string) *os.File {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	_, err = w.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return r
}

func execute(t *testing.T, in *os.File, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := mnemonic.New()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if in != nil {
		cmd.SetIn(in)
	}

	err := cmd.Execute()

	return out.String(), err
}

func TestNewWordCount(t *testing.T) {
	t.Parallel()

	for _, words := range []int{12, 15, 18, 21, 24} {
		out, err := execute(t, nil, "new", "--words", strconv.Itoa(words))
		require.NoError(t, err)

		phrase := strings.TrimSpace(out)
		assert.Len(t, strings.Fields(phrase), words)
		assert.True(t, seed.ValidateMnemonic(phrase))
	}

	out, err := execute(t, nil, "new")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 12)
}

func TestNewRejectsUnsupportedWordCount(t *testing.T) {
	t.Parallel()

	_, err := execute(t, nil, "new", "--words", "13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported word count 13")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	//nolint:dupword // Test mnemonic with repeated words
	out, err := execute(t, pipeInput(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"), "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Mnemonic is valid BIP-39.")

	// last word breaks the checksum
	//nolint:dupword // Test mnemonic with repeated words
	out, err = execute(t, pipeInput(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"), "validate")
	require.ErrorIs(t, err, mnemonic.ErrInvalidMnemonic)
	assert.Contains(t, out, "Mnemonic is NOT valid BIP-39.")
}
