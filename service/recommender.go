// Package service 提供面向应用的推荐门面：加载当前快照、调用融合
// 排序引擎、跑后处理流水线、按需生成解释与离线评估指标。
package service

import (
	"context"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/eval"
	"github.com/rushteam/modulerec/pipeline"
	"github.com/rushteam/modulerec/rank"
)

// SnapshotSource 提供当前权威快照。modelstore.Store 即是其生产实现。
type SnapshotSource interface {
	Load(ctx context.Context) (*core.Snapshot, string, error)
}

// Explained 是带解释的单条推荐。
type Explained struct {
	Recommendation *core.Recommendation `json:"recommendation"`
	Explanation    *rank.Explanation    `json:"explanation"`
}

// Recommender 是推荐服务门面。无请求间状态，可被任意并发调用。
type Recommender struct {
	Snapshots SnapshotSource
	Engine    *rank.Engine
	Evaluator *eval.Evaluator

	// PostRank 排序之后的后处理流水线（过滤、重排），可为空
	PostRank *pipeline.Pipeline
}

// New 创建使用默认引擎与评估器的推荐服务。
func New(snapshots SnapshotSource) *Recommender {
	engine := rank.NewEngine()
	return &Recommender{
		Snapshots: snapshots,
		Engine:    engine,
		Evaluator: eval.NewEvaluator(engine),
	}
}

func (r *Recommender) engine() *rank.Engine {
	if r.Engine != nil {
		return r.Engine
	}
	return rank.NewEngine()
}

// Recommend 为用户计算 Top-N 推荐。
func (r *Recommender) Recommend(ctx context.Context, user *core.UserContext, topN int) ([]*core.Recommendation, error) {
	snap, _, err := r.Snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	engine := r.engine()
	rows, err := engine.Rank(ctx, user, snap, topN)
	if err != nil {
		return nil, err
	}

	if r.PostRank != nil {
		rctx := &core.RecommendContext{
			User:     user,
			Snapshot: snap,
			TopN:     engine.ClampTopN(topN),
		}
		rows, err = r.PostRank.Run(ctx, rctx, rows)
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// RecommendExplain 为用户计算 Top-N 推荐并附带逐条解释。
func (r *Recommender) RecommendExplain(ctx context.Context, user *core.UserContext, topN int) ([]Explained, error) {
	rows, err := r.Recommend(ctx, user, topN)
	if err != nil {
		return nil, err
	}
	out := make([]Explained, len(rows))
	for i, rec := range rows {
		out[i] = Explained{
			Recommendation: rec,
			Explanation:    rank.Explain(rec),
		}
	}
	return out, nil
}

// Evaluate 对快照用户表中的某个用户计算 @k 评估指标。
func (r *Recommender) Evaluate(ctx context.Context, userID string, k int) (core.EvalMetrics, error) {
	snap, _, err := r.Snapshots.Load(ctx)
	if err != nil {
		return core.EvalMetrics{}, err
	}

	evaluator := r.Evaluator
	if evaluator == nil {
		evaluator = eval.NewEvaluator(r.engine())
	}
	return evaluator.Evaluate(ctx, userID, k, snap)
}
