package filter

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Blacklist 是黑名单过滤器，过滤掉名单中的物品。
type Blacklist struct {
	// ItemIDs 是内存中的黑名单物品 ID 列表
	ItemIDs []int64
}

func (f *Blacklist) Name() string { return "filter.blacklist" }

func (f *Blacklist) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	rec *core.Recommendation,
) (bool, error) {
	if rec == nil {
		return true, nil
	}
	for _, id := range f.ItemIDs {
		if rec.ID == id {
			return true, nil
		}
	}
	return false, nil
}
