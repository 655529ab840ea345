package account

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/balance"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/keys"
)

// service 实现 Service 接口
type service struct {
	gateway    *gateway.Gateway
	commitment rpc.CommitmentType
}

// NewService 创建账户信息服务
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(gw *gateway.Gateway, commitment rpc.CommitmentType) Service {
	return &service{
		gateway:    gw,
		commitment: commitment,
	}
}

// Fetch 获取账户快照
// 地址非法时直接返回 keys.ErrInvalidAddress，不做重试；
// 所有端点在所有尝试中都失败时返回 *gateway.RetriesExhaustedError。
func (s *service) Fetch(ctx context.Context, address string) (*Snapshot, error) {
	pubkey, err := keys.ParseSolanaAddress(address)
	if err != nil {
		return nil, err
	}

	log := util.LogFromContext(ctx).With().
		Str("component", "account_fetcher").
		Str("address", pubkey.String()).
		Logger()

	snapshot, err := gateway.Retry(ctx, s.gateway, func(ctx context.Context, client gateway.Client) (*Snapshot, error) {
		return s.fetchOnce(ctx, client, pubkey)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch account info")
		return nil, err
	}

	snapshot.FetchedAt = time.Now().UTC()

	log.Debug().
		Uint64("lamports", snapshot.Lamports).
		Bool("exists", snapshot.Exists).
		Str("owner", snapshot.Owner).
		Msg("Fetched account info")

	return snapshot, nil
}

// fetchOnce 在同一个端点上依次查询余额和账户元数据
func (s *service) fetchOnce(ctx context.Context, client gateway.Client, pubkey solana.PublicKey) (*Snapshot, error) {
	bal, err := client.GetBalance(ctx, pubkey, s.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	snapshot := &Snapshot{
		Address:  pubkey.String(),
		Lamports: bal.Value,
		Balance:  balance.ToSOL(bal.Value),
		Owner:    SystemOwner,
		Slot:     bal.Context.Slot,
	}

	info, err := client.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Commitment: s.commitment,
	})
	if err != nil {
		// 从未分配过的账户没有元数据，这是正常结果
		if errors.Is(err, rpc.ErrNotFound) {
			return snapshot, nil
		}

		return nil, errors.Wrap(err, "failed to get account info")
	}

	snapshot.Exists = true
	snapshot.Owner = info.Value.Owner.String()
	snapshot.Executable = info.Value.Executable
	if info.Value.Data != nil {
		snapshot.DataSize = len(info.Value.Data.GetBinary())
	}

	return snapshot, nil
}
