package signal

import (
	"context"

	"github.com/rushteam/modulerec/core"
)

// Profile 是画像相似信号：把（外部已预处理的）画像文本经拟合后的
// 转换器嵌入到 TF-IDF 空间，与每个模块的 TF-IDF 向量做余弦相似。
//
// 画像文本为空时信号未激活、向量全零。
type Profile struct{}

func (s *Profile) Name() string { return "signal.profile" }

func (s *Profile) Extract(
	_ context.Context,
	uc *core.UserContext,
	snap *core.Snapshot,
) ([]float64, bool, error) {
	if !uc.HasProfile() || snap.Transformer == nil {
		return make([]float64, snap.Len()), false, nil
	}
	return ProfileSimilarities(snap, uc.ProfileText), true, nil
}

// ProfileSimilarities 计算画像文本的 TF-IDF 向量与每个模块 TF-IDF
// 向量的余弦相似。评估引擎推导相关集时复用同一过程。
func ProfileSimilarities(snap *core.Snapshot, profileText string) []float64 {
	vec := snap.Transformer.EmbedProfile(profileText)
	out := make([]float64, snap.Len())
	for i, row := range snap.TFIDF {
		out[i] = Cosine(vec, row)
	}
	return out
}
