package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// HardenedOffset is added to an index to mark it hardened (0x80000000).
	HardenedOffset uint32 = 0x80000000

	PurposeBIP44     uint32 = 44
	CoinTypeSolana   uint32 = 501
	CoinTypeEthereum uint32 = 60
)

// DerivationPath is m/purpose'/coinType'/account'/change'. Every segment is
// hardened; AccountIndex is the only segment that varies within a session.
type DerivationPath struct {
	Purpose      uint32
	CoinType     uint32
	AccountIndex uint32
	Change       uint32
}

// NewDerivationPath returns the BIP-44 path for coinType and accountIndex with change 0.
func NewDerivationPath(coinType uint32, accountIndex uint32) DerivationPath {
	return DerivationPath{
		Purpose:      PurposeBIP44,
		CoinType:     coinType,
		AccountIndex: accountIndex,
		Change:       0,
	}
}

// String renders the canonical hardened form, e.g. m/44'/501'/0'/0'.
func (p DerivationPath) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d'", p.Purpose, p.CoinType, p.AccountIndex, p.Change)
}

// Indices returns the hardened child indices of the path.
func (p DerivationPath) Indices() []uint32 {
	return []uint32{
		p.Purpose + HardenedOffset,
		p.CoinType + HardenedOffset,
		p.AccountIndex + HardenedOffset,
		p.Change + HardenedOffset,
	}
}

// ParsePath parses a derivation path string into child indices.
// Example: "m/44'/501'/0'/0'" -> [2147483692, 2147484149, 2147483648, 2147483648]
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path != "m" && !strings.HasPrefix(path, "m/") {
		return nil, errors.Wrapf(ErrInvalidPath, "path must start with m/: %q", path)
	}

	parts := strings.Split(strings.TrimPrefix(path, "m"), "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}

		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
			hardened = true
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || uint32(index) >= HardenedOffset {
			return nil, errors.Wrapf(ErrInvalidPath, "invalid path segment %q", part)
		}

		// Add hardened flag (0x80000000)
		if hardened {
			index += uint64(HardenedOffset)
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}

// AccountIndexFromPath returns the account index of path, which must be the
// full hardened BIP-44 path of coinType with change 0, e.g. m/44'/501'/7'/0'.
func AccountIndexFromPath(path string, coinType uint32) (uint32, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return 0, err
	}

	want := NewDerivationPath(coinType, 0).Indices()
	if len(indices) != len(want) ||
		indices[0] != want[0] ||
		indices[1] != want[1] ||
		indices[2] < HardenedOffset ||
		indices[3] != want[3] {
		return 0, errors.Wrapf(ErrInvalidPath, "%q is not m/%d'/%d'/<account>'/0'", path, PurposeBIP44, coinType)
	}

	return indices[2] - HardenedOffset, nil
}
