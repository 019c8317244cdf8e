// Package signal 实现四路相关性信号的抽取：内容相似、画像相似、
// 流行度、协同亲和。每路信号输出与快照物品表按行对齐的原始分数向量，
// 以及该信号对当前用户是否“激活”（数据是否可用）。
//
// 融合前的归一化（min-max）与激活权重的重归一化也在本包，
// 保持为可独立单测的纯函数。
package signal

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Source 是信号抽取的统一契约。
//
// Extract 返回：
//   - scores: 原始分数向量，与 snap.Modules 按行号对齐
//   - active: 该信号对此用户是否激活；未激活时 scores 为全零向量
//
// 实现必须是纯函数：不修改快照，不持有请求间状态。
type Source interface {
	Name() string
	Extract(ctx context.Context, uc *core.UserContext, snap *core.Snapshot) (scores []float64, active bool, err error)
}
