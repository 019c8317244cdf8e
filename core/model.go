package core

// TextEmbedder 是文本嵌入提供方的能力接口。
//
// 拟合（fit）发生在外部训练管线；这里只消费拟合后的产物。
// 两个方法对同一个拟合产物都是确定性的。
type TextEmbedder interface {
	// EmbedProfile 将（已预处理的）画像文本嵌入到 TF-IDF 特征空间。
	EmbedProfile(text string) []float64

	// EmbedItems 将一批物品文本嵌入为 物品 × 特征 矩阵。
	EmbedItems(texts []string) [][]float64

	// Dim 返回 TF-IDF 特征空间维度。
	Dim() int
}

// CFModel 是协同过滤模型的能力接口：只暴露“按用户行号给所有物品打分”。
//
// 返回值以模型内部的物品行号为 key；调用方通过快照的 ItemIndex
// 映射回目录行。模型未覆盖的物品视为 0 分。
type CFModel interface {
	// ScoreAllItems 计算 userRow（模型内部用户行号）对所有物品的亲和分。
	ScoreAllItems(userRow int) map[int]float64
}
