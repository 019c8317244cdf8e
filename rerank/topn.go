// Package rerank 提供融合排序之后的重排节点：截断、多样性打散等。
package rerank

import (
	"context"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pipeline"
)

// TopNNode 截断结果到前 N 条。N<=0 时不截断。
type TopNNode struct {
	N int
}

var _ pipeline.Node = (*TopNNode)(nil)

func (n *TopNNode) Name() string { return "node.topn" }

func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	if n.N <= 0 || len(recs) <= n.N {
		return recs, nil
	}
	return recs[:n.N], nil
}
