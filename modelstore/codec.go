package modelstore

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/model"
)

// bundle 是快照的持久化形态。接口字段在这里落为生产实现的具体类型：
// 序列化边界只接受 model.TFIDF / model.ALS（能力接口的唯一生产实现）。
type bundle struct {
	Version        string             `json:"version"`
	Modules        []core.Module      `json:"modules"`
	ContentVectors [][]float64        `json:"content_vectors"`
	TFIDF          [][]float64        `json:"tfidf"`
	Popularity     []float64          `json:"popularity,omitempty"`
	Users          []core.UserRecord  `json:"users,omitempty"`
	UserIndex      map[string]int     `json:"user_index,omitempty"`
	ItemIndex      map[int64]int      `json:"item_index,omitempty"`
	Transformer    *model.TFIDF       `json:"transformer,omitempty"`
	CF             *model.ALS         `json:"cf,omitempty"`
}

func encodeSnapshot(snap *core.Snapshot, version string) ([]byte, error) {
	b := bundle{
		Version:        version,
		Modules:        snap.Modules,
		ContentVectors: snap.ContentVectors,
		TFIDF:          snap.TFIDF,
		Popularity:     snap.Popularity,
		Users:          snap.Users,
		UserIndex:      snap.UserIndex,
		ItemIndex:      snap.ItemIndex,
	}

	if snap.Transformer != nil {
		t, ok := snap.Transformer.(*model.TFIDF)
		if !ok {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeNotSupported,
				fmt.Sprintf("modelstore: unsupported transformer type %T", snap.Transformer))
		}
		b.Transformer = t
	}
	if snap.CF != nil {
		cf, ok := snap.CF.(*model.ALS)
		if !ok {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeNotSupported,
				fmt.Sprintf("modelstore: unsupported cf model type %T", snap.CF))
		}
		b.CF = cf
	}

	return json.Marshal(b)
}

func decodeSnapshot(data []byte) (*core.Snapshot, error) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("modelstore: decode bundle: %w", err)
	}

	snap := &core.Snapshot{
		Version:        b.Version,
		Modules:        b.Modules,
		ContentVectors: b.ContentVectors,
		TFIDF:          b.TFIDF,
		Popularity:     b.Popularity,
		Users:          b.Users,
		UserIndex:      b.UserIndex,
		ItemIndex:      b.ItemIndex,
	}
	// 注意不要把 typed-nil 塞进接口字段
	if b.Transformer != nil {
		snap.Transformer = b.Transformer
	}
	if b.CF != nil {
		snap.CF = b.CF
	}
	snap.Reindex()
	return snap, nil
}
