// Package config 提供服务的 YAML 配置与装配工厂：存储后端、融合权重、
// 评估阈值、后处理流水线与特征平台连接都从配置声明式构建。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/eval"
	"github.com/rushteam/modulerec/filter"
	"github.com/rushteam/modulerec/modelstore"
	"github.com/rushteam/modulerec/pipeline"
	"github.com/rushteam/modulerec/pkg/conv"
	"github.com/rushteam/modulerec/rank"
	"github.com/rushteam/modulerec/rerank"
	"github.com/rushteam/modulerec/service"
	"github.com/rushteam/modulerec/signal"
	"github.com/rushteam/modulerec/store"
)

// Config 是服务的顶层配置。
type Config struct {
	// Weights 四路信号的基础权重，零值使用默认权重
	Weights signal.Weights `yaml:"weights"`

	// MaxTopN top_n 上界，<=0 使用默认值
	MaxTopN int `yaml:"max_top_n"`

	Eval    EvalConfig     `yaml:"eval"`
	Store   StoreConfig    `yaml:"store"`
	Filters []FilterConfig `yaml:"filters"`
	ReRank  ReRankConfig   `yaml:"rerank"`
	Feast   *FeastConfig   `yaml:"feast"`
}

type EvalConfig struct {
	FavThreshold     float64 `yaml:"fav_threshold"`
	ProfileThreshold float64 `yaml:"profile_threshold"`
}

type StoreConfig struct {
	// Backend "memory" 或 "redis"，默认 memory
	Backend string `yaml:"backend"`
	Addr    string `yaml:"addr"`
	DB      int    `yaml:"db"`
}

type FilterConfig struct {
	// Kind "blacklist" 或 "rule"
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`

	// Expr rule 过滤器的 CEL 表达式
	Expr string `yaml:"expr"`

	// Params 过滤器的附加参数，如 blacklist 的 item_ids
	Params map[string]any `yaml:"params"`
}

type ReRankConfig struct {
	// DiversityMaxPerTag >0 时启用标签多样性节点
	DiversityMaxPerTag int `yaml:"diversity_max_per_tag"`
}

type FeastConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Project  string   `yaml:"project"`
	Features []string `yaml:"features"`
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置内容。
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	return &cfg, nil
}

// Build 按配置装配完整的推荐服务。
func (c *Config) Build() (*service.Recommender, error) {
	backend, err := c.buildBackend()
	if err != nil {
		return nil, err
	}

	engine := &rank.Engine{Weights: c.Weights, MaxTopN: c.MaxTopN}
	evaluator := eval.NewEvaluator(engine)
	if c.Eval.FavThreshold > 0 {
		evaluator.FavThreshold = c.Eval.FavThreshold
	}
	if c.Eval.ProfileThreshold > 0 {
		evaluator.ProfileThreshold = c.Eval.ProfileThreshold
	}

	postRank, err := c.buildPostRank()
	if err != nil {
		return nil, err
	}

	return &service.Recommender{
		Snapshots: modelstore.New(backend),
		Engine:    engine,
		Evaluator: evaluator,
		PostRank:  postRank,
	}, nil
}

func (c *Config) buildBackend() (core.KeyValueStore, error) {
	switch c.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(c.Store.Addr, c.Store.DB)
	default:
		return nil, fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
}

func (c *Config) buildPostRank() (*pipeline.Pipeline, error) {
	var nodes []pipeline.Node

	if len(c.Filters) > 0 {
		filters := make([]filter.Filter, 0, len(c.Filters))
		for _, fc := range c.Filters {
			f, err := buildFilter(fc)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
		nodes = append(nodes, &filter.FilterNode{Filters: filters})
	}

	if c.ReRank.DiversityMaxPerTag > 0 {
		nodes = append(nodes, &rerank.DiversityNode{MaxPerTag: c.ReRank.DiversityMaxPerTag})
	}

	if len(nodes) == 0 {
		return nil, nil
	}
	return &pipeline.Pipeline{Nodes: nodes}, nil
}

func buildFilter(fc FilterConfig) (filter.Filter, error) {
	switch fc.Kind {
	case "blacklist":
		ids, err := blacklistIDs(fc.Params)
		if err != nil {
			return nil, err
		}
		return &filter.Blacklist{ItemIDs: ids}, nil
	case "rule":
		if fc.Expr == "" {
			return nil, fmt.Errorf("config: rule filter %q has no expr", fc.Name)
		}
		return filter.NewRuleFilter(fc.Name, fc.Expr)
	default:
		return nil, fmt.Errorf("config: unknown filter kind %q", fc.Kind)
	}
}

func blacklistIDs(params map[string]any) ([]int64, error) {
	raw, ok := params["item_ids"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("config: blacklist item_ids must be a list")
	}
	ids := make([]int64, 0, len(list))
	for _, item := range list {
		id, ok := conv.ToInt64(item)
		if !ok {
			return nil, fmt.Errorf("config: blacklist item id %v is not numeric", item)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
