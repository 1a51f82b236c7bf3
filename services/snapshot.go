package services

import (
	"sync"
	"time"
)

// Snapshot 一次成功抓取的完整结果。整体替换,从不部分修改。
type Snapshot struct {
	// Data 是上游响应体,其中 airdrops 已替换为排序后的归一化序列,
	// 其余顶层字段原样透传
	Data        map[string]interface{}
	FetchedAt   time.Time
	Fingerprint string
	HasChanges  bool
	FetchID     string
}

// SnapshotStore 进程内唯一的快照槽,支持任意并发读、单写整体替换
type SnapshotStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewSnapshotStore 创建快照槽
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Get 获取当前快照,没有时返回 nil
func (s *SnapshotStore) Get() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Set 整体替换快照
func (s *SnapshotStore) Set(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
}

// Fresh 返回当前快照以及它在给定有效期内是否仍然新鲜
func (s *SnapshotStore) Fresh(now time.Time, window time.Duration) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, false
	}
	return s.snap, now.Sub(s.snap.FetchedAt) < window
}
