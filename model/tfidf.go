// Package model 提供能力接口的生产实现：拟合后的 TF-IDF 转换器与
// 矩阵分解协同模型。拟合本身发生在外部训练管线，这里只应用产物。
package model

import (
	"math"
	"strings"

	"github.com/rushteam/modulerec/core"
)

// TFIDF 是拟合后的 TF-IDF 转换器：词表 + 逆文档频率。
// 对同一份拟合产物，Embed 系列方法是确定性的；输出行做 L2 归一化。
//
// 输入文本应当已经过外部 NLP 预处理（分词、去停用词、词干化），
// 这里只做小写化和按空白切分。
type TFIDF struct {
	// Vocab 词项 → 特征列号
	Vocab map[string]int `json:"vocab"`

	// IDF 按特征列号对齐的逆文档频率
	IDF []float64 `json:"idf"`
}

var _ core.TextEmbedder = (*TFIDF)(nil)

// Dim 返回 TF-IDF 特征空间维度。
func (t *TFIDF) Dim() int { return len(t.IDF) }

// EmbedProfile 将画像文本嵌入到 TF-IDF 空间。
func (t *TFIDF) EmbedProfile(text string) []float64 {
	vec := make([]float64, len(t.IDF))
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if col, ok := t.Vocab[tok]; ok && col < len(vec) {
			vec[col]++
		}
	}
	for col := range vec {
		vec[col] *= t.IDF[col]
	}
	l2NormalizeInPlace(vec)
	return vec
}

// EmbedItems 将一批物品文本嵌入为 物品 × 特征 矩阵。
func (t *TFIDF) EmbedItems(texts []string) [][]float64 {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = t.EmbedProfile(text)
	}
	return out
}

func l2NormalizeInPlace(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
