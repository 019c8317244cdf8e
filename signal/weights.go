package signal

// Weights 是四路信号的融合权重。
type Weights struct {
	Content       float64 `yaml:"content" json:"content"`
	Profile       float64 `yaml:"profile" json:"profile"`
	Popularity    float64 `yaml:"popularity" json:"popularity"`
	Collaborative float64 `yaml:"collaborative" json:"collaborative"`
}

// DefaultWeights 返回默认基础权重。
// 协同信号默认关闭；是否启用是配置决策。
func DefaultWeights() Weights {
	return Weights{
		Content:       0.45,
		Profile:       0.50,
		Popularity:    0.05,
		Collaborative: 0.00,
	}
}

// Activity 记录每路信号对当前用户是否激活。
type Activity struct {
	Content       bool
	Profile       bool
	Popularity    bool
	Collaborative bool
}

// Names 返回激活信号的名称列表（用于 explain label）。
func (a Activity) Names() []string {
	names := make([]string, 0, 4)
	if a.Content {
		names = append(names, "content")
	}
	if a.Profile {
		names = append(names, "profile")
	}
	if a.Popularity {
		names = append(names, "popularity")
	}
	if a.Collaborative {
		names = append(names, "collaborative")
	}
	return names
}

// Renormalize 计算激活权重：未激活信号权重归零，其余按激活权重之和
// 重归一化。所有信号都未激活时权重之和按 1 处理（定义过的边界情形，
// 不是错误），融合分退化为全零。
func (w Weights) Renormalize(a Activity) Weights {
	out := Weights{}
	if a.Content {
		out.Content = w.Content
	}
	if a.Profile {
		out.Profile = w.Profile
	}
	if a.Popularity {
		out.Popularity = w.Popularity
	}
	if a.Collaborative {
		out.Collaborative = w.Collaborative
	}

	sum := out.Content + out.Profile + out.Popularity + out.Collaborative
	if sum == 0 {
		sum = 1
	}
	out.Content /= sum
	out.Profile /= sum
	out.Popularity /= sum
	out.Collaborative /= sum
	return out
}
