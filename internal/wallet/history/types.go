package history

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"

	"github/chapool/sol-explorer/internal/wallet/balance"
)

// Status 交易状态
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
	// StatusUnknown 交易详情查询失败
	StatusUnknown Status = "Unknown"
)

const (
	DefaultLimit       = 10
	DefaultConcurrency = 10
)

// Service 交易历史服务接口
type Service interface {
	// Fetch 获取地址最近的交易摘要（按节点返回顺序，最新在前）
	// 从不返回错误：没有交易或所有节点都失败时返回空列表
	Fetch(ctx context.Context, address string) []*Summary

	// Resolve 查询单笔交易，仅在签名格式非法时返回错误
	Resolve(ctx context.Context, signature string) (*Summary, error)
}

// Options 交易历史查询参数
type Options struct {
	Limit             int // 每次最多返回的签名数
	Concurrency       int // 并发查询交易详情的数量
	RequestsPerSecond int // 交易详情查询速率，0 表示不限速
	Commitment        rpc.CommitmentType
}

func DefaultOptions() Options {
	return Options{
		Limit:             DefaultLimit,
		Concurrency:       DefaultConcurrency,
		RequestsPerSecond: 0,
		Commitment:        rpc.CommitmentConfirmed,
	}
}

// Summary 交易摘要
type Summary struct {
	Signature      string
	Slot           uint64
	OccurredAt     *time.Time // 出块时间，未知时为 nil
	Status         Status
	FeeLamports    uint64
	Fee            decimal.Decimal // 手续费（SOL）
	ExecutionError string          // 执行失败原因，仅 StatusFailed 时有值
}

// unknownSummary 交易详情查询失败时的占位记录
func unknownSummary(signature string, slot uint64) *Summary {
	return &Summary{
		Signature:   signature,
		Slot:        slot,
		OccurredAt:  nil,
		Status:      StatusUnknown,
		FeeLamports: 0,
		Fee:         balance.ToSOL(0),
	}
}
