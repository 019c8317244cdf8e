package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/modulerec/core"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rankSnapshot() *core.Snapshot {
	snap := &core.Snapshot{
		Modules: []core.Module{
			{ID: 1, Name: "python"},
			{ID: 2, Name: "ml"},
			{ID: 3, Name: "web"},
		},
		ContentVectors: [][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		TFIDF: [][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		Popularity: []float64{0.1, 0.9, 0.5},
	}
	snap.Reindex()
	return snap
}

func TestRankValidatesInput(t *testing.T) {
	e := NewEngine()
	if _, err := e.Rank(context.Background(), nil, rankSnapshot(), 5); !core.IsInvalidInput(err) {
		t.Errorf("nil user: err = %v, want invalid input", err)
	}
	if _, err := e.Rank(context.Background(), &core.UserContext{}, nil, 5); !core.IsInvalidInput(err) {
		t.Errorf("nil snapshot: err = %v, want invalid input", err)
	}
}

func TestRankEmptyWithoutAnySignal(t *testing.T) {
	e := NewEngine()
	uc := &core.UserContext{UserID: "u"}

	recs, err := e.Rank(context.Background(), uc, rankSnapshot(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if recs == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(recs) != 0 {
		t.Errorf("user without favorites and profile got %d recommendations", len(recs))
	}
}

func TestRankUnknownFavoritesOnlyIsEmpty(t *testing.T) {
	e := NewEngine()
	uc := &core.UserContext{UserID: "u", Favorites: []int64{99}}

	recs, err := e.Rank(context.Background(), uc, rankSnapshot(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("unresolvable favorites alone produced %d recommendations", len(recs))
	}
}

func TestRankExcludesFavorites(t *testing.T) {
	e := NewEngine()
	uc := &core.UserContext{UserID: "u", Favorites: []int64{1}}

	recs, err := e.Rank(context.Background(), uc, rankSnapshot(), 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range recs {
		if rec.ID == 1 {
			t.Error("favorite module leaked into recommendations")
		}
	}
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want 2", len(recs))
	}
}

func TestRankFusesContentAndPopularity(t *testing.T) {
	e := NewEngine()
	uc := &core.UserContext{UserID: "u", Favorites: []int64{1}}

	recs, err := e.Rank(context.Background(), uc, rankSnapshot(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}

	// 收藏向量与其余模块正交，内容归一化分全 0；激活权重为
	// content 0.45 / popularity 0.05 重归一化后 0.9 / 0.1。
	// 流行度 min-max 后 module2=1、module3=0.5，融合分 0.1 和 0.05。
	if recs[0].ID != 2 || recs[1].ID != 3 {
		t.Fatalf("order = [%d %d], want [2 3]", recs[0].ID, recs[1].ID)
	}
	if !approx(recs[0].FinalScore, 0.1) {
		t.Errorf("module2 final = %v, want 0.1", recs[0].FinalScore)
	}
	if !approx(recs[1].FinalScore, 0.05) {
		t.Errorf("module3 final = %v, want 0.05", recs[1].FinalScore)
	}
	if recs[0].Rank != 1 || recs[1].Rank != 2 {
		t.Errorf("ranks = [%d %d], want [1 2]", recs[0].Rank, recs[1].Rank)
	}
}

func TestRankActiveSignalsLabel(t *testing.T) {
	e := NewEngine()
	uc := &core.UserContext{UserID: "u", Favorites: []int64{1}}

	recs, err := e.Rank(context.Background(), uc, rankSnapshot(), 5)
	if err != nil {
		t.Fatal(err)
	}
	label, ok := recs[0].Labels["active_signals"]
	if !ok {
		t.Fatal("active_signals label missing")
	}
	if label.Value != "content|popularity" {
		t.Errorf("active_signals = %q, want %q", label.Value, "content|popularity")
	}
}

func TestRankStableTieOrder(t *testing.T) {
	snap := &core.Snapshot{
		Modules: []core.Module{
			{ID: 10}, {ID: 20}, {ID: 30}, {ID: 40},
		},
		ContentVectors: [][]float64{
			{1, 0},
			{1, 0},
			{1, 0},
			{0, 1},
		},
		TFIDF: [][]float64{{1, 0}, {1, 0}, {1, 0}, {0, 1}},
	}
	snap.Reindex()

	e := NewEngine()
	uc := &core.UserContext{UserID: "u", Favorites: []int64{10}}
	recs, err := e.Rank(context.Background(), uc, snap, 5)
	if err != nil {
		t.Fatal(err)
	}
	// 20 和 30 融合分相同，必须保持目录行序
	if len(recs) != 3 || recs[0].ID != 20 || recs[1].ID != 30 || recs[2].ID != 40 {
		ids := make([]int64, len(recs))
		for i, r := range recs {
			ids[i] = r.ID
		}
		t.Errorf("order = %v, want [20 30 40]", ids)
	}
}

func TestRankDeterministic(t *testing.T) {
	e := NewEngine()
	uc := &core.UserContext{UserID: "u", Favorites: []int64{1}, ProfileText: "python web"}
	snap := rankSnapshot()
	snap.Transformer = nil // 画像信号不激活，其余信号照常

	first, err := e.Rank(context.Background(), uc, snap, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := e.Rank(context.Background(), uc, snap, 5)
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d != %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].ID != first[j].ID || !approx(again[j].FinalScore, first[j].FinalScore) {
				t.Fatalf("run %d row %d: (%d %v) != (%d %v)",
					i, j, again[j].ID, again[j].FinalScore, first[j].ID, first[j].FinalScore)
			}
		}
	}
}

func TestClampTopN(t *testing.T) {
	tests := []struct {
		name    string
		maxTopN int
		topN    int
		want    int
	}{
		{name: "zero clamps to one", topN: 0, want: 1},
		{name: "negative clamps to one", topN: -7, want: 1},
		{name: "within range unchanged", topN: 10, want: 10},
		{name: "above default cap clamps to 50", topN: 500, want: 50},
		{name: "custom cap respected", maxTopN: 2, topN: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Engine{MaxTopN: tt.maxTopN}
			if got := e.ClampTopN(tt.topN); got != tt.want {
				t.Errorf("ClampTopN(%d) = %d, want %d", tt.topN, got, tt.want)
			}
		})
	}
}

func TestRankTruncatesToTopN(t *testing.T) {
	e := &Engine{MaxTopN: 1}
	uc := &core.UserContext{UserID: "u", Favorites: []int64{1}}

	recs, err := e.Rank(context.Background(), uc, rankSnapshot(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("got %d recommendations, want 1 after clamping", len(recs))
	}
}
