// Package modelstore 实现模型快照的生命周期存储：不可变、按时间戳
// 版本化的 bundle 持久化，"current" 指针在排它锁下原子切换。
//
// 锁只保护 current 指针与新 bundle 的写入，不覆盖 load 之后的请求
// 处理：load 返回的是反序列化出来的独立快照值，后续 save 不影响它。
package modelstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rushteam/modulerec/core"
)

const (
	currentKey    = "model:current"
	versionPrefix = "model:"
	versionsKey   = "model:versions"
)

// ErrSnapshotNotFound 表示从未保存过任何快照。
var ErrSnapshotNotFound = core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeNotFound, "modelstore: no snapshot has been saved")

// Store 是快照生命周期存储。
//
// 并发契约：
//   - Save 持排它锁：写入版本化 bundle，最后切换 current 指针；
//     中途任何存储错误都会中止提交，旧快照保持权威（all-or-nothing）
//   - Load 持共享锁：不会观察到进行中的指针切换，读到的 bundle
//     永远是完整提交过的某个版本
//   - 历史版本无限期保留，清理属于外部保留策略
type Store struct {
	backend core.KeyValueStore

	mu sync.RWMutex

	// lastSaved 保证版本号在快速连续保存下仍单调递增且唯一
	lastSaved time.Time

	// now 可在测试中替换
	now func() time.Time
}

// New 创建基于给定 KV 后端的快照存储。
func New(backend core.KeyValueStore) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
	}
}

// Save 保存一份新快照，返回其版本号。
//
// 版本号由当前时间派生（UTC，纳秒精度，字典序即时间序）；如果时钟
// 读数与上一版本相同或回退，则在上一版本之后加 1ns，保证单调。
func (s *Store) Save(ctx context.Context, snap *core.Snapshot) (string, error) {
	if snap == nil {
		return "", core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput, "modelstore: snapshot is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	if !ts.After(s.lastSaved) {
		ts = s.lastSaved.Add(time.Nanosecond)
	}
	version := formatVersion(ts)

	data, err := encodeSnapshot(snap, version)
	if err != nil {
		return "", err
	}

	if err := s.backend.Set(ctx, versionPrefix+version, data); err != nil {
		return "", err
	}
	if err := s.backend.ZAdd(ctx, versionsKey, float64(ts.UnixNano()), version); err != nil {
		return "", err
	}
	// 指针切换是提交点：之前任何失败都让旧快照保持 current
	if err := s.backend.Set(ctx, currentKey, []byte(version)); err != nil {
		return "", err
	}

	s.lastSaved = ts
	return version, nil
}

// Load 加载 current 指针指向的快照。
//
// 返回的快照是反序列化出来的独立值：之后开始的 Save 不会影响调用方
// 正在使用的这一份。从未保存过任何快照时返回 ErrSnapshotNotFound。
func (s *Store) Load(ctx context.Context) (*core.Snapshot, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versionBytes, err := s.backend.Get(ctx, currentKey)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, "", ErrSnapshotNotFound
		}
		return nil, "", err
	}
	version := string(versionBytes)

	data, err := s.backend.Get(ctx, versionPrefix+version)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, "", ErrSnapshotNotFound
		}
		return nil, "", err
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, "", err
	}
	return snap, version, nil
}

// LoadVersion 按版本号加载历史快照。
func (s *Store) LoadVersion(ctx context.Context, version string) (*core.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.backend.Get(ctx, versionPrefix+version)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return decodeSnapshot(data)
}

// Versions 返回已保存的版本号列表，新的在前。
func (s *Store) Versions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend.ZRange(ctx, versionsKey, 0, -1)
}

// formatVersion 生成字典序可比较的时间戳版本号，
// 例如 "20260829T101530.123456789"。
func formatVersion(ts time.Time) string {
	base := ts.Format("20060102T150405")
	return base + "." + pad9(ts.Nanosecond())
}

func pad9(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 9 {
		s = "0" + s
	}
	return s
}
