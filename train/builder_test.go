package train

import (
	"context"
	"testing"

	"github.com/rushteam/modulerec/core"
)

func trainModules() []core.Module {
	return []core.Module{
		{ID: 1, Name: "Python", Description: "python programming basics", Tags: []string{"python"}, Features: map[string]float64{"popularity_score": 0.9}},
		{ID: 2, Name: "ML", Description: "machine learning python", Tags: []string{"ml"}, Features: map[string]float64{"popularity_score": 0.5}},
	}
}

func TestFitProducesAlignedArtifacts(t *testing.T) {
	b := &Builder{}
	modules := trainModules()
	arts := b.Fit(modules)

	if arts.Transformer == nil {
		t.Fatal("no transformer fitted")
	}
	if len(arts.TFIDF) != len(modules) || len(arts.ContentVectors) != len(modules) {
		t.Fatalf("matrix rows %d/%d, want %d", len(arts.TFIDF), len(arts.ContentVectors), len(modules))
	}
	if arts.ItemIndex[1] != 0 || arts.ItemIndex[2] != 1 {
		t.Errorf("item index = %v", arts.ItemIndex)
	}

	// 模块文本应进入词表，画像嵌入与物品行处于同一空间
	vec := arts.Transformer.EmbedProfile("python")
	nonzero := false
	for _, x := range vec {
		if x != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		t.Error("catalog term embedded to zero vector")
	}
}

func TestBuildSnapshot(t *testing.T) {
	b := &Builder{}
	modules := trainModules()
	users := []core.UserRecord{{UserID: "u1", Favorites: []int64{1}}}

	snap, err := b.Build(context.Background(), modules, users, b.Fit(modules))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Len() != 2 {
		t.Fatalf("snapshot has %d modules, want 2", snap.Len())
	}
	if !snap.HasPopularity() {
		t.Error("popularity column missing")
	}
	if snap.Popularity[0] != 0.9 || snap.Popularity[1] != 0.5 {
		t.Errorf("popularity = %v", snap.Popularity)
	}
	if row, ok := snap.RowByID(2); !ok || row != 1 {
		t.Error("id index not built")
	}
	if len(snap.Users) != 1 {
		t.Error("users not carried into snapshot")
	}
}

func TestBuildPopularityRequiresFullColumn(t *testing.T) {
	b := &Builder{}
	modules := trainModules()
	modules[1].Features = nil // 缺一个就整列不可用

	snap, err := b.Build(context.Background(), modules, nil, b.Fit(modules))
	if err != nil {
		t.Fatal(err)
	}
	if snap.HasPopularity() {
		t.Error("partial popularity data must disable the column")
	}
}

func TestBuildValidatesAlignment(t *testing.T) {
	b := &Builder{}
	modules := trainModules()

	t.Run("no modules", func(t *testing.T) {
		_, err := b.Build(context.Background(), nil, nil, Artifacts{})
		if !core.IsInvalidInput(err) {
			t.Errorf("err = %v, want invalid input", err)
		}
	})

	t.Run("missing transformer", func(t *testing.T) {
		arts := b.Fit(modules)
		arts.Transformer = nil
		_, err := b.Build(context.Background(), modules, nil, arts)
		if !core.IsInvalidInput(err) {
			t.Errorf("err = %v, want invalid input", err)
		}
	})

	t.Run("misaligned content vectors", func(t *testing.T) {
		arts := b.Fit(modules)
		arts.ContentVectors = arts.ContentVectors[:1]
		_, err := b.Build(context.Background(), modules, nil, arts)
		if !core.IsInvalidInput(err) {
			t.Errorf("err = %v, want invalid input", err)
		}
	})
}

// mapFeatureSource 是 FeatureSource 的内存桩。
type mapFeatureSource struct {
	features map[int64]map[string]float64
}

func (s *mapFeatureSource) ModuleFeatures(_ context.Context, ids []int64) (map[int64]map[string]float64, error) {
	return s.features, nil
}

func TestBuildEnrichesFromFeatureSource(t *testing.T) {
	b := &Builder{
		Features: &mapFeatureSource{
			features: map[int64]map[string]float64{
				1: {"interests_match_score": 0.8, "popularity_score": 0.95},
			},
		},
	}
	modules := trainModules()

	snap, err := b.Build(context.Background(), modules, nil, b.Fit(modules))
	if err != nil {
		t.Fatal(err)
	}

	m := snap.Modules[0]
	if m.Features["interests_match_score"] != 0.8 {
		t.Errorf("enriched feature missing: %v", m.Features)
	}
	// 平台侧覆盖本地值
	if m.Features["popularity_score"] != 0.95 {
		t.Errorf("platform value should win: %v", m.Features["popularity_score"])
	}
	if snap.Popularity[0] != 0.95 {
		t.Errorf("popularity column should see enriched value: %v", snap.Popularity)
	}
}

func TestFeatureKey(t *testing.T) {
	if featureKey("module_stats:popularity_score") != "popularity_score" {
		t.Error("feature reference short name not extracted")
	}
	if featureKey("plain") != "plain" {
		t.Error("plain reference should pass through")
	}
}
