// Package eval 实现离线评估引擎：独立于融合分推导相关性 ground truth，
// 再用它衡量排序引擎的输出质量（precision / recall / hit-rate @k）。
package eval

import (
	"context"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/rank"
	"github.com/rushteam/modulerec/signal"
)

// 两个相似度阈值必须不同：收藏相似度在降维内容嵌入空间（分值更大、
// 更分散），画像相似度在原始 TF-IDF 余弦空间（分值偏小）。
// 共用一个阈值会系统性饿死其中一路的相关集。
const (
	DefaultFavThreshold     = 0.35
	DefaultProfileThreshold = 0.05
)

// Evaluator 是评估引擎。与排序引擎一样是无状态纯计算，可并发运行。
type Evaluator struct {
	Engine *rank.Engine

	// FavThreshold / ProfileThreshold <=0 时使用默认值
	FavThreshold     float64
	ProfileThreshold float64
}

// NewEvaluator 创建使用默认阈值的评估器。
func NewEvaluator(engine *rank.Engine) *Evaluator {
	return &Evaluator{
		Engine:           engine,
		FavThreshold:     DefaultFavThreshold,
		ProfileThreshold: DefaultProfileThreshold,
	}
}

// Evaluate 对快照用户表中的某个用户计算 @k 指标。
//
// 相关集的推导刻意绕开融合分，避免用引擎自己评自己：
//   - 收藏内容相似 ≥ FavThreshold 记为相关
//   - 画像 TF-IDF 相似 ≥ ProfileThreshold 记为相关
//   - 两路任一成立即相关（逻辑或）；两路都不可用时相关集为空
//   - 已收藏的物品不算“发现”，从相关集中剔除
func (e *Evaluator) Evaluate(
	ctx context.Context,
	userID string,
	k int,
	snap *core.Snapshot,
) (core.EvalMetrics, error) {
	if snap == nil {
		return core.EvalMetrics{}, core.NewDomainError(core.ModuleEval, core.ErrorCodeInvalidInput, "eval: snapshot is required")
	}
	if len(snap.Users) == 0 {
		return core.EvalMetrics{}, core.NewDomainError(core.ModuleEval, core.ErrorCodeNotFound, "eval: no user profiles available for evaluation")
	}
	user, ok := snap.UserByID(userID)
	if !ok {
		return core.EvalMetrics{}, core.NewDomainError(core.ModuleEval, core.ErrorCodeNotFound, "eval: user not found in snapshot")
	}

	engine := e.Engine
	if engine == nil {
		engine = rank.NewEngine()
	}
	k = engine.ClampTopN(k)

	uc := user.Context()
	recs, err := engine.Rank(ctx, uc, snap, k)
	if err != nil {
		return core.EvalMetrics{}, err
	}

	relevant := e.relevantSet(snap, uc)

	hits := 0
	for _, rec := range recs {
		if _, ok := relevant[rec.ID]; ok {
			hits++
		}
	}

	denom := len(relevant)
	if denom < 1 {
		denom = 1
	}
	metrics := core.EvalMetrics{
		PrecisionAtK: float64(hits) / float64(k),
		RecallAtK:    float64(hits) / float64(denom),
	}
	if hits > 0 {
		metrics.HitRateAtK = 1
	}
	return metrics, nil
}

// relevantSet 推导用户的 ground-truth 相关物品 ID 集合。
func (e *Evaluator) relevantSet(snap *core.Snapshot, uc *core.UserContext) map[int64]struct{} {
	favThreshold := e.FavThreshold
	if favThreshold <= 0 {
		favThreshold = DefaultFavThreshold
	}
	profileThreshold := e.ProfileThreshold
	if profileThreshold <= 0 {
		profileThreshold = DefaultProfileThreshold
	}

	favRows := snap.ResolveFavorites(uc.Favorites)

	var simsFav, simsProfile []float64
	if len(favRows) > 0 {
		simsFav = signal.ContentSimilarities(snap, favRows)
	}
	if uc.HasProfile() && snap.Transformer != nil {
		simsProfile = signal.ProfileSimilarities(snap, uc.ProfileText)
	}

	favSet := uc.FavoriteSet()
	relevant := make(map[int64]struct{})
	for i := range snap.Modules {
		id := snap.Modules[i].ID
		if _, isFav := favSet[id]; isFav {
			continue
		}
		if simsFav != nil && simsFav[i] >= favThreshold {
			relevant[id] = struct{}{}
			continue
		}
		if simsProfile != nil && simsProfile[i] >= profileThreshold {
			relevant[id] = struct{}{}
		}
	}
	return relevant
}
