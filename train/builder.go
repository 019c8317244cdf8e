// Package train 把解析后的物品与用户数据装配为一份完整的模型快照：
// 拟合文本嵌入器、对齐各路信号矩阵、可选地从特征平台补充物品特征。
package train

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/model"
)

// Artifacts 是训练产物的集合。Fit 产出基础产物；
// 协同模型等外部训练的产物由调用方填入后一起装配。
type Artifacts struct {
	Transformer core.TextEmbedder

	// ContentVectors 物品 × 特征 的内容嵌入矩阵，与物品表按行对齐
	ContentVectors [][]float64

	// TFIDF 物品 × 词项 的原始文本特征矩阵，与物品表按行对齐
	TFIDF [][]float64

	// CF 外部训练的协同模型（可选）
	CF        core.CFModel
	UserIndex map[string]int
	ItemIndex map[int64]int
}

// Builder 装配模型快照。
type Builder struct {
	// Features 特征平台数据源（可选）。设置后，Build 会在装配前
	// 用平台侧特征补充物品的 Features
	Features FeatureSource
}

// Fit 在物品表上拟合基础产物：文本嵌入器、TF-IDF 矩阵与物品行号映射。
// 没有独立内容嵌入模型时，内容向量直接复用 TF-IDF 矩阵。
func (b *Builder) Fit(modules []core.Module) Artifacts {
	texts := make([]string, len(modules))
	for i, m := range modules {
		texts[i] = moduleText(m)
	}

	transformer := model.FitTFIDF(texts)
	tfidf := transformer.EmbedItems(texts)

	itemIndex := make(map[int64]int, len(modules))
	for i, m := range modules {
		itemIndex[m.ID] = i
	}

	return Artifacts{
		Transformer:    transformer,
		ContentVectors: tfidf,
		TFIDF:          tfidf,
		ItemIndex:      itemIndex,
	}
}

// Build 装配并返回一份可直接持久化的快照。
// 各路矩阵必须与物品表按行对齐，否则返回 INVALID_INPUT。
func (b *Builder) Build(ctx context.Context, modules []core.Module, users []core.UserRecord, arts Artifacts) (*core.Snapshot, error) {
	if len(modules) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput, "train: no modules to build from")
	}
	if arts.Transformer == nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput, "train: transformer is required")
	}
	if len(arts.ContentVectors) != len(modules) {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("train: content vectors rows %d != modules %d", len(arts.ContentVectors), len(modules)))
	}
	if len(arts.TFIDF) != len(modules) {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("train: tfidf rows %d != modules %d", len(arts.TFIDF), len(modules)))
	}

	if b.Features != nil {
		if err := b.enrich(ctx, modules); err != nil {
			return nil, err
		}
	}

	snap := &core.Snapshot{
		Modules:        modules,
		ContentVectors: arts.ContentVectors,
		TFIDF:          arts.TFIDF,
		Popularity:     popularityColumn(modules),
		Users:          users,
		UserIndex:      arts.UserIndex,
		ItemIndex:      arts.ItemIndex,
		Transformer:    arts.Transformer,
		CF:             arts.CF,
	}
	snap.Reindex()
	return snap, nil
}

// enrich 用特征平台的在线特征补充物品特征，平台侧优先。
func (b *Builder) enrich(ctx context.Context, modules []core.Module) error {
	ids := make([]int64, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	features, err := b.Features.ModuleFeatures(ctx, ids)
	if err != nil {
		return fmt.Errorf("train: fetch module features: %w", err)
	}
	for i := range modules {
		extra, ok := features[modules[i].ID]
		if !ok {
			continue
		}
		if modules[i].Features == nil {
			modules[i].Features = make(map[string]float64, len(extra))
		}
		for k, v := range extra {
			modules[i].Features[k] = v
		}
	}
	return nil
}

// popularityColumn 提取流行度列。任一物品缺失该特征时整列不可用，
// 避免把"缺数据"当成"零流行度"。
func popularityColumn(modules []core.Module) []float64 {
	col := make([]float64, len(modules))
	for i, m := range modules {
		v, ok := m.Features["popularity_score"]
		if !ok {
			return nil
		}
		col[i] = v
	}
	return col
}

func moduleText(m core.Module) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{m.Name, m.ShortDescription, m.Description} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	if len(m.Tags) > 0 {
		parts = append(parts, strings.Join(m.Tags, " "))
	}
	return strings.Join(parts, " ")
}
