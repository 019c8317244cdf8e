// Package rank 实现信号融合排序引擎：把四路异构相关性信号归一化、
// 按激活情况加权融合为单一排序，并保证确定性的 Top-N 截断。
package rank

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pkg/utils"
	"github.com/rushteam/modulerec/signal"
)

// DefaultMaxTopN 是 top_n 的默认上界。
const DefaultMaxTopN = 50

// Engine 是融合排序引擎。
//
// Rank 是其输入与快照的纯函数：不修改快照，无请求间状态，
// 可在任意数量的并发 worker 上无协调地运行。
type Engine struct {
	// Weights 是四路信号的基础权重；零值使用 DefaultWeights。
	Weights signal.Weights

	// MaxTopN 是 top_n 的上界；<=0 使用 DefaultMaxTopN。
	// 越界的 top_n 请求被钳制到 [1, MaxTopN]，不拒绝。
	MaxTopN int
}

// NewEngine 创建使用默认权重的引擎。
func NewEngine() *Engine {
	return &Engine{Weights: signal.DefaultWeights(), MaxTopN: DefaultMaxTopN}
}

// ClampTopN 将请求的 top_n 钳制到合法区间。
func (e *Engine) ClampTopN(topN int) int {
	max := e.MaxTopN
	if max <= 0 {
		max = DefaultMaxTopN
	}
	if topN < 1 {
		return 1
	}
	if topN > max {
		return max
	}
	return topN
}

// Rank 计算用户的 Top-N 推荐，带完整分数拆解。
//
// 流程：
//  1. 并发抽取四路原始信号向量
//  2. 每路 min-max 归一化到 [0,1]
//  3. 未激活信号权重归零，激活权重重归一化
//  4. 加权求和得融合分
//  5. 排除用户已收藏的物品
//  6. 按融合分降序稳定排序（平分按目录行序），截断到 top_n
//
// 既无可解析收藏也无画像文本的用户直接得到空结果：没有任何个性化
// 信号时不允许光靠流行度造推荐。
func (e *Engine) Rank(
	ctx context.Context,
	uc *core.UserContext,
	snap *core.Snapshot,
	topN int,
) ([]*core.Recommendation, error) {
	if uc == nil {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, "rank: user context is required")
	}
	if snap == nil {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, "rank: snapshot is required")
	}
	topN = e.ClampTopN(topN)

	favRows := snap.ResolveFavorites(uc.Favorites)
	if len(favRows) == 0 && !uc.HasProfile() {
		return []*core.Recommendation{}, nil
	}

	norm, activity, err := e.extract(ctx, uc, snap)
	if err != nil {
		return nil, err
	}

	w := e.Weights
	if w == (signal.Weights{}) {
		w = signal.DefaultWeights()
	}
	aw := w.Renormalize(activity)
	activeLabel := strings.Join(activity.Names(), "|")

	favSet := uc.FavoriteSet()
	rows := make([]*core.Recommendation, 0, snap.Len())
	for i := range snap.Modules {
		m := &snap.Modules[i]
		if _, isFav := favSet[m.ID]; isFav {
			continue
		}
		rec := &core.Recommendation{
			ID:                 m.ID,
			Name:               m.Name,
			ShortDescription:   m.ShortDescription,
			ContentScore:       norm.content[i],
			ProfileScore:       norm.profile[i],
			PopularityScore:    norm.popularity[i],
			CollaborativeScore: norm.collaborative[i],
		}
		rec.FinalScore = aw.Content*rec.ContentScore +
			aw.Profile*rec.ProfileScore +
			aw.Popularity*rec.PopularityScore +
			aw.Collaborative*rec.CollaborativeScore
		rec.PutLabel("active_signals", utils.Label{Value: activeLabel, Source: "fuse"})
		rows = append(rows, rec)
	}

	// 稳定排序：融合分相同的物品保持目录行序，保证相同输入的输出一致
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore > rows[j].FinalScore
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}
	for i, rec := range rows {
		rec.Rank = i + 1
	}
	return rows, nil
}

type normalized struct {
	content       []float64
	profile       []float64
	popularity    []float64
	collaborative []float64
}

// extract 并发抽取四路信号并归一化。每个 goroutine 只写自己的槽位，
// Wait 之后再读，结果与串行执行一致。
func (e *Engine) extract(
	ctx context.Context,
	uc *core.UserContext,
	snap *core.Snapshot,
) (normalized, signal.Activity, error) {
	sources := [4]signal.Source{
		&signal.Content{},
		&signal.Profile{},
		&signal.Popularity{},
		&signal.Collaborative{},
	}

	var (
		raws   [4][]float64
		active [4]bool
	)
	eg, egCtx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		eg.Go(func() error {
			scores, ok, err := src.Extract(egCtx, uc, snap)
			if err != nil {
				return err
			}
			raws[i] = scores
			active[i] = ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return normalized{}, signal.Activity{}, err
	}

	norm := normalized{
		content:       signal.MinMaxScale(raws[0]),
		profile:       signal.MinMaxScale(raws[1]),
		popularity:    signal.MinMaxScale(raws[2]),
		collaborative: signal.MinMaxScale(raws[3]),
	}
	activity := signal.Activity{
		Content:       active[0],
		Profile:       active[1],
		Popularity:    active[2],
		Collaborative: active[3],
	}
	return norm, activity, nil
}
