package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/balance"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/keys"
)

var ErrInvalidSignature = errors.New("invalid transaction signature")

// maxSupportedTransactionVersion 支持 legacy 和 v0 交易
var maxSupportedTransactionVersion uint64

// service 实现 Service 接口
type service struct {
	gateway *gateway.Gateway
	opts    Options
	limiter ratelimit.Limiter
}

// NewService 创建交易历史服务
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(gw *gateway.Gateway, opts Options) Service {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = opts.Limit
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RequestsPerSecond > 0 {
		limiter = ratelimit.New(opts.RequestsPerSecond)
	}

	return &service{
		gateway: gw,
		opts:    opts,
		limiter: limiter,
	}
}

// Fetch 获取交易历史
// 签名列表只走一轮端点故障转移，不做整体重试；
// 交易详情在应答签名列表的同一个节点上并发查询，单笔失败降级为 StatusUnknown。
func (s *service) Fetch(ctx context.Context, address string) []*Summary {
	log := util.LogFromContext(ctx).With().
		Str("component", "history_fetcher").
		Str("address", address).
		Logger()

	pubkey, err := keys.ParseSolanaAddress(address)
	if err != nil {
		log.Warn().Err(err).Msg("Skipping history for invalid address")
		return []*Summary{}
	}

	limit := s.opts.Limit
	signatures, ep, err := gateway.Call(ctx, s.gateway, func(ctx context.Context, client gateway.Client) ([]*rpc.TransactionSignature, error) {
		return client.GetSignaturesForAddressWithOpts(ctx, pubkey, &rpc.GetSignaturesForAddressOpts{
			Limit:      &limit,
			Commitment: s.opts.Commitment,
		})
	})
	if err != nil {
		log.Warn().Err(err).Msg("No endpoint returned signatures, showing empty history")
		return []*Summary{}
	}

	if len(signatures) > limit {
		signatures = signatures[:limit]
	}

	summaries := s.resolveAll(ctx, ep, signatures)

	unknown := 0
	for _, summary := range summaries {
		if summary.Status == StatusUnknown {
			unknown++
		}
	}

	log.Debug().
		Str("endpoint", ep.URL).
		Int("transactions", len(summaries)).
		Int("unknown", unknown).
		Msg("Fetched transaction history")

	return summaries
}

// resolveAll 并发查询交易详情，结果保持签名列表的原始顺序
func (s *service) resolveAll(ctx context.Context, ep *gateway.Endpoint, signatures []*rpc.TransactionSignature) []*Summary {
	summaries := make([]*Summary, len(signatures))

	var group errgroup.Group
	group.SetLimit(s.opts.Concurrency)

	for i, sig := range signatures {
		i, sig := i, sig
		group.Go(func() error {
			s.limiter.Take()

			tx, err := gateway.Invoke(ctx, s.gateway, ep, s.getTransaction(sig.Signature))
			if err != nil {
				util.LogFromContext(ctx).Debug().
					Str("signature", sig.Signature.String()).
					Str("endpoint", ep.URL).
					Err(err).
					Msg("Failed to resolve transaction")

				summaries[i] = unknownSummary(sig.Signature.String(), sig.Slot)
				return nil
			}

			summaries[i] = summarize(sig.Signature.String(), tx)
			return nil
		})
	}

	// Every goroutine returns nil, failures are recorded as StatusUnknown rows.
	_ = group.Wait()

	return summaries
}

// Resolve 查询单笔交易，走完整的端点故障转移
func (s *service) Resolve(ctx context.Context, signature string) (*Summary, error) {
	sig, err := solana.SignatureFromBase58(strings.TrimSpace(signature))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSignature, "%q: %v", signature, err)
	}

	tx, _, err := gateway.Call(ctx, s.gateway, s.getTransaction(sig))
	if err != nil {
		util.LogFromContext(ctx).Warn().
			Str("signature", sig.String()).
			Err(err).
			Msg("Failed to resolve transaction")

		return unknownSummary(sig.String(), 0), nil
	}

	return summarize(sig.String(), tx), nil
}

func (s *service) getTransaction(sig solana.Signature) gateway.Operation[*rpc.GetTransactionResult] {
	return func(ctx context.Context, client gateway.Client) (*rpc.GetTransactionResult, error) {
		return client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
			Encoding:                       solana.EncodingBase64,
			Commitment:                     s.opts.Commitment,
			MaxSupportedTransactionVersion: &maxSupportedTransactionVersion,
		})
	}
}

// summarize 将交易详情转换为摘要
func summarize(signature string, tx *rpc.GetTransactionResult) *Summary {
	summary := &Summary{
		Signature: signature,
		Slot:      tx.Slot,
		Status:    StatusSuccess,
		Fee:       balance.ToSOL(0),
	}

	if tx.BlockTime != nil {
		occurredAt := tx.BlockTime.Time().UTC()
		summary.OccurredAt = &occurredAt
	}

	if tx.Meta != nil {
		summary.FeeLamports = tx.Meta.Fee
		summary.Fee = balance.ToSOL(tx.Meta.Fee)

		if tx.Meta.Err != nil {
			summary.Status = StatusFailed
			summary.ExecutionError = describeExecutionError(tx.Meta.Err)
		}
	}

	return summary
}

// describeExecutionError renders meta.err the way the RPC returned it, e.g. {"InstructionError":[0,{"Custom":1}]}
func describeExecutionError(txErr interface{}) string {
	raw, err := json.Marshal(txErr)
	if err != nil {
		return fmt.Sprint(txErr)
	}

	return string(raw)
}
