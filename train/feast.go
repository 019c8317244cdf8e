package train

import (
	"context"
	"fmt"
	"strings"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// FeatureSource 按物品 ID 批量获取数值特征。
type FeatureSource interface {
	ModuleFeatures(ctx context.Context, ids []int64) (map[int64]map[string]float64, error)
}

// FeastSource 是基于 Feast 在线特征服务的 FeatureSource 实现。
type FeastSource struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名
	Project string

	// Features 要拉取的特征引用，如 "module_stats:popularity_score"
	Features []string

	// EntityName 实体键名，默认 "module_id"
	EntityName string
}

// NewFeastSource 连接 Feast Feature Server 并创建特征源。
func NewFeastSource(host string, port int, project string, features []string) (*FeastSource, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("train: connect feast %s:%d: %w", host, port, err)
	}
	return &FeastSource{
		client:   client,
		Project:  project,
		Features: features,
	}, nil
}

// ModuleFeatures 拉取一批物品的在线特征。
// 非数值特征被跳过，特征键取引用中冒号后的短名。
func (s *FeastSource) ModuleFeatures(ctx context.Context, ids []int64) (map[int64]map[string]float64, error) {
	if len(ids) == 0 || len(s.Features) == 0 {
		return map[int64]map[string]float64{}, nil
	}

	entityName := s.EntityName
	if entityName == "" {
		entityName = "module_id"
	}

	entities := make([]feastsdk.Row, len(ids))
	for i, id := range ids {
		entities[i] = feastsdk.Row{entityName: feastsdk.Int64Val(id)}
	}

	resp, err := s.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: s.Features,
		Entities: entities,
		Project:  s.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("train: feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(ids) {
		return nil, fmt.Errorf("train: feast row count %d != entity count %d", len(rows), len(ids))
	}

	out := make(map[int64]map[string]float64, len(ids))
	for i, row := range rows {
		values := make(map[string]float64, len(s.Features))
		for _, ref := range s.Features {
			val, ok := row[featureKey(ref)]
			if !ok {
				val, ok = row[ref]
			}
			if !ok {
				continue
			}
			if f, ok := valueToFloat(val); ok {
				values[featureKey(ref)] = f
			}
		}
		out[ids[i]] = values
	}
	return out, nil
}

// featureKey 取特征引用中冒号后的短名。
func featureKey(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func valueToFloat(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val), true
	case *feasttypes.Value_BoolVal:
		if val.BoolVal {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
