package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

// InitializeSeed loads mnemonic and passphrase into the seed manager. A phrase
// that fails the BIP-39 checksum is still accepted, only a warning is logged.
func InitializeSeed(ctx context.Context, seedManager seed.Manager, mnemonic string, passphrase string) error {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_init").Logger()

	mnemonic = seed.NormalizeMnemonic(mnemonic)
	if !seed.ValidateMnemonic(mnemonic) {
		log.Warn().
			Int("words", len(strings.Fields(mnemonic))).
			Msg("Mnemonic does not pass the BIP-39 word list or checksum check, deriving anyway")
	}

	if err := seedManager.Initialize(mnemonic, passphrase); err != nil {
		return errors.Wrap(err, "failed to initialize seed manager")
	}

	log.Info().Msg("Seed manager initialized")

	return nil
}

// SecretPrompter reads secrets line by line from one input. When the input is
// a terminal nothing is echoed and the prompt is written to out first.
type SecretPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

func NewSecretPrompter(in *os.File, out io.Writer) *SecretPrompter {
	return &SecretPrompter{
		in:  in,
		out: out,
	}
}

// Prompt returns the next secret without its line ending.
//
//nolint:forbidigo // Secret input requires direct terminal I/O
func (p *SecretPrompter) Prompt(prompt string) (string, error) {
	fd := int(p.in.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		// piped input, one shared reader so buffered lines are not lost
		if p.reader == nil {
			p.reader = bufio.NewReader(p.in)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "failed to read secret from input")
		}

		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(p.out, prompt)

	// Read secret from terminal (hides input)
	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", errors.Wrap(err, "failed to read secret from terminal")
	}

	fmt.Fprintln(p.out) // New line after secret input

	return string(secret), nil
}
