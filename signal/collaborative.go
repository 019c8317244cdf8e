package signal

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Collaborative 是协同亲和信号。
//
// 激活条件（二者缺一不可）：
//  1. 用户 ID 存在于协同模型的用户行号映射
//  2. 用户有 ≥1 个可解析的收藏——没有任何收藏的用户即使 ID 碰巧在
//     映射里，也不视为被协同模型有效建模
//
// 激活时向模型请求全量物品打分，经 ItemIndex 映射回目录行号；
// 模型未覆盖的物品得 0 分。未激活时向量全零。
type Collaborative struct{}

func (s *Collaborative) Name() string { return "signal.collaborative" }

func (s *Collaborative) Extract(
	_ context.Context,
	uc *core.UserContext,
	snap *core.Snapshot,
) ([]float64, bool, error) {
	out := make([]float64, snap.Len())

	if snap.CF == nil || !snap.IsKnownUser(uc.UserID) {
		return out, false, nil
	}
	if len(snap.ResolveFavorites(uc.Favorites)) == 0 {
		return out, false, nil
	}

	userRow := snap.UserIndex[uc.UserID]
	scores := snap.CF.ScoreAllItems(userRow)
	for itemID, modelRow := range snap.ItemIndex {
		catalogRow, ok := snap.RowByID(itemID)
		if !ok {
			continue
		}
		out[catalogRow] = scores[modelRow]
	}
	return out, true, nil
}
