package pipeline

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Pipeline 把推荐结果的后处理逻辑拆成可组合的 Node 链。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	rows []*core.Recommendation,
) ([]*core.Recommendation, error) {
	cur := rows
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
