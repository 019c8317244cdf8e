package rank

import (
	"context"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pipeline"
)

// FuseNode 把融合排序引擎包装成 Pipeline Node，放在链路起点：
// 忽略上游输入，从 rctx 的快照与用户上下文直接产出排序结果。
type FuseNode struct {
	Engine *Engine
}

func (n *FuseNode) Name() string        { return "rank.fuse" }
func (n *FuseNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *FuseNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Recommendation,
) ([]*core.Recommendation, error) {
	engine := n.Engine
	if engine == nil {
		engine = NewEngine()
	}
	return engine.Rank(ctx, rctx.User, rctx.Snapshot, rctx.TopN)
}
