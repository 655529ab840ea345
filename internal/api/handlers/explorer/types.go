package explorer

import (
	"time"

	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/wallet/account"
	"github/chapool/sol-explorer/internal/wallet/balance"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/history"
	"github/chapool/sol-explorer/internal/wallet/keys"
)

// AccountResponse is the account snapshot as served over HTTP.
// Balance is a fixed 9 decimal SOL string to keep full precision.
type AccountResponse struct {
	Address    string    `json:"address"`
	Lamports   uint64    `json:"lamports"`
	Balance    string    `json:"balance"`
	DataSize   int       `json:"dataSize"`
	Owner      string    `json:"owner"`
	Executable bool      `json:"executable"`
	Exists     bool      `json:"exists"`
	Slot       uint64    `json:"slot"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

type TransactionResponse struct {
	Signature      string     `json:"signature"`
	Slot           uint64     `json:"slot"`
	OccurredAt     *time.Time `json:"occurredAt"`
	Status         string     `json:"status"`
	FeeLamports    uint64     `json:"feeLamports"`
	Fee            string     `json:"fee"`
	ExecutionError string     `json:"executionError,omitempty"`
}

type TransactionsResponse struct {
	Address      string                 `json:"address"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// OverviewResponse carries both halves of an overview load. Account is nil
// when the account fetch failed, AccountError then describes the failure.
type OverviewResponse struct {
	LoadID       string                 `json:"loadId"`
	Address      string                 `json:"address"`
	Account      *AccountResponse       `json:"account"`
	AccountError *httperrors.HTTPError  `json:"accountError,omitempty"`
	Transactions []*TransactionResponse `json:"transactions"`
	LoadedAt     time.Time              `json:"loadedAt"`
}

func toAccountResponse(s *account.Snapshot) *AccountResponse {
	return &AccountResponse{
		Address:    s.Address,
		Lamports:   s.Lamports,
		Balance:    balance.FormatSOL(s.Lamports),
		DataSize:   s.DataSize,
		Owner:      s.Owner,
		Executable: s.Executable,
		Exists:     s.Exists,
		Slot:       s.Slot,
		FetchedAt:  s.FetchedAt.UTC(),
	}
}

func toTransactionResponse(s *history.Summary) *TransactionResponse {
	res := &TransactionResponse{
		Signature:      s.Signature,
		Slot:           s.Slot,
		Status:         string(s.Status),
		FeeLamports:    s.FeeLamports,
		Fee:            balance.FormatSOL(s.FeeLamports),
		ExecutionError: s.ExecutionError,
	}
	if s.OccurredAt != nil {
		t := s.OccurredAt.UTC()
		res.OccurredAt = &t
	}

	return res
}

func toTransactionResponses(summaries []*history.Summary) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toTransactionResponse(s))
	}

	return out
}

// accountError maps account fetch failures onto HTTP errors.
func accountError(err error) *httperrors.HTTPError {
	var exhausted *gateway.RetriesExhaustedError

	switch {
	case errors.Is(err, keys.ErrInvalidAddress):
		return httperrors.ErrBadRequestInvalidAddress.WithDetail(err.Error())
	case errors.As(err, &exhausted):
		return httperrors.NewRPCUnavailable(exhausted.Attempts, exhausted.LastCause(), err)
	default:
		return nil
	}
}
