package signal

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Content 是内容相似信号：用户收藏模块内容向量的均值 vs 每个模块的
// 内容向量，余弦相似（双方先做 L2 归一化）。
//
// 没有可解析收藏的用户不产生真实内容信号：信号置为未激活、向量全零。
// （对全目录均值向量求相似度只会给每个模块一个无意义的非零分，
// 权重反正为 0，不值得污染分数拆解。）
type Content struct{}

func (s *Content) Name() string { return "signal.content" }

func (s *Content) Extract(
	_ context.Context,
	uc *core.UserContext,
	snap *core.Snapshot,
) ([]float64, bool, error) {
	favRows := snap.ResolveFavorites(uc.Favorites)
	if len(favRows) == 0 {
		return make([]float64, snap.Len()), false, nil
	}
	return ContentSimilarities(snap, favRows), true, nil
}

// ContentSimilarities 计算收藏行集合的均值内容向量与每个模块内容
// 向量的余弦相似。评估引擎推导相关集时复用同一过程。
func ContentSimilarities(snap *core.Snapshot, favRows []int) []float64 {
	userVec := L2Normalize(MeanVector(snap.ContentVectors, favRows))
	out := make([]float64, snap.Len())
	for i, vec := range snap.ContentVectors {
		// 全零物品向量按约定相似度为 0
		out[i] = Cosine(userVec, L2Normalize(vec))
	}
	return out
}
