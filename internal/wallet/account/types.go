package account

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// SystemOwner 未分配账户的 owner 哨兵值，表示账户只属于基础账本（System Program）
var SystemOwner = solana.SystemProgramID.String()

// Service 账户信息服务接口
type Service interface {
	// Fetch 获取账户快照：端点故障转移 + 整体重试
	Fetch(ctx context.Context, address string) (*Snapshot, error)
}

// Snapshot 账户快照，每次 Fetch 都重新生成，不做缓存
type Snapshot struct {
	Address    string
	Lamports   uint64          // 余额（lamports）
	Balance    decimal.Decimal // 余额（SOL）
	DataSize   int             // 账户数据字节数
	Owner      string          // 所属程序
	Executable bool
	Exists     bool   // 链上是否存在账户元数据
	Slot       uint64 // getBalance 响应的 slot
	FetchedAt  time.Time
}
