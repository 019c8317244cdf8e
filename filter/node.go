package filter

import (
	"context"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pipeline"
)

// FilterNode 是流水线中的过滤节点，依次应用一组过滤器。
// 任一过滤器命中即移除该行，其余行保持原有顺序。
type FilterNode struct {
	Filters []Filter
}

var _ pipeline.Node = (*FilterNode)(nil)

func (n *FilterNode) Name() string { return "node.filter" }

func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	if len(n.Filters) == 0 {
		return recs, nil
	}

	kept := recs[:0]
	for _, rec := range recs {
		drop := false
		for _, f := range n.Filters {
			matched, err := f.ShouldFilter(ctx, rctx, rec)
			if err != nil {
				return nil, err
			}
			if matched {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, rec)
		}
	}
	// 过滤后重排名次，保持连续
	for i, rec := range kept {
		rec.Rank = i + 1
	}
	return kept, nil
}
