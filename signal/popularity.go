package signal

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Popularity 是流行度信号：原始分即快照的流行度列。
// 列不存在时信号未激活、向量全零。
type Popularity struct{}

func (s *Popularity) Name() string { return "signal.popularity" }

func (s *Popularity) Extract(
	_ context.Context,
	_ *core.UserContext,
	snap *core.Snapshot,
) ([]float64, bool, error) {
	if !snap.HasPopularity() {
		return make([]float64, snap.Len()), false, nil
	}
	out := make([]float64, snap.Len())
	copy(out, snap.Popularity)
	return out, true, nil
}
