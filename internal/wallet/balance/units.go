package balance

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// LamportsPerSOL lamports 与 SOL 的换算基数 (10^9)
	LamportsPerSOL = 1_000_000_000
	// solDecimals SOL 的小数位数
	solDecimals = 9
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrAmountTooLarge = errors.New("amount does not fit into lamports")
	ErrTooPrecise     = errors.New("amount has more than 9 decimal places")
)

// ToSOL 将 lamports 转换为 SOL
func ToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -solDecimals)
}

// FormatSOL 格式化为固定 9 位小数的 SOL 字符串
func FormatSOL(lamports uint64) string {
	return ToSOL(lamports).StringFixed(solDecimals)
}

// ParseSOL 将 SOL 字符串解析为 lamports
func ParseSOL(amount string) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", amount)
	}

	if d.IsNegative() {
		return 0, errors.Wrapf(ErrNegativeAmount, "%s", amount)
	}

	lamports := d.Shift(solDecimals)
	if !lamports.Equal(lamports.Truncate(0)) {
		return 0, errors.Wrapf(ErrTooPrecise, "%s", amount)
	}

	if lamports.GreaterThan(decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)) {
		return 0, errors.Wrapf(ErrAmountTooLarge, "%s", amount)
	}

	return lamports.BigInt().Uint64(), nil
}
