package rerank

import (
	"context"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pipeline"
)

// DiversityNode 按标签做多样性控制：同一标签下最多保留 MaxPerTag 条。
// 输入按分数降序，先到先得，被挤掉的行直接移除。
type DiversityNode struct {
	// MaxPerTag 每个标签最多保留的条数，<=0 时默认为 2
	MaxPerTag int
}

var _ pipeline.Node = (*DiversityNode)(nil)

func (n *DiversityNode) Name() string { return "node.diversity" }

func (n *DiversityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DiversityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	recs []*core.Recommendation,
) ([]*core.Recommendation, error) {
	maxPerTag := n.MaxPerTag
	if maxPerTag <= 0 {
		maxPerTag = 2
	}
	if rctx == nil || rctx.Snapshot == nil {
		return recs, nil
	}

	seen := make(map[string]int)
	kept := recs[:0]
	for _, rec := range recs {
		row, ok := rctx.Snapshot.RowByID(rec.ID)
		if !ok || len(rctx.Snapshot.Modules[row].Tags) == 0 {
			kept = append(kept, rec)
			continue
		}
		tags := rctx.Snapshot.Modules[row].Tags
		over := false
		for _, tag := range tags {
			if seen[tag] >= maxPerTag {
				over = true
				break
			}
		}
		if over {
			continue
		}
		for _, tag := range tags {
			seen[tag]++
		}
		kept = append(kept, rec)
	}
	for i, rec := range kept {
		rec.Rank = i + 1
	}
	return kept, nil
}
