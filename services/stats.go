package services

import (
	"sync"
	"time"
)

// FetchStats 抓取统计
type FetchStats struct {
	mu              sync.RWMutex
	startTime       time.Time
	totalFetches    int64
	failedFetches   int64
	changesDetected int64
	cacheHits       int64
	cacheMisses     int64
	lastFetchTime   time.Time
	lastChangeTime  time.Time
	lastEventCount  int
}

// NewFetchStats 创建抓取统计
func NewFetchStats() *FetchStats {
	return &FetchStats{
		startTime: time.Now(),
	}
}

// RecordFetch 记录一次成功抓取
func (s *FetchStats) RecordFetch(eventCount int, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.totalFetches++
	s.lastFetchTime = now
	s.lastEventCount = eventCount
	if changed {
		s.changesDetected++
		s.lastChangeTime = now
	}
}

// RecordFailure 记录一次抓取失败
func (s *FetchStats) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failedFetches++
}

// RecordCacheHit 记录一次缓存命中
func (s *FetchStats) RecordCacheHit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cacheHits++
}

// RecordCacheMiss 记录一次缓存未命中
func (s *FetchStats) RecordCacheMiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cacheMisses++
}

// Summary 生成统计摘要
func (s *FetchStats) Summary() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := map[string]interface{}{
		"uptime_seconds":   int64(time.Since(s.startTime).Seconds()),
		"total_fetches":    s.totalFetches,
		"failed_fetches":   s.failedFetches,
		"changes_detected": s.changesDetected,
		"cache_hits":       s.cacheHits,
		"cache_misses":     s.cacheMisses,
		"last_event_count": s.lastEventCount,
	}

	if !s.lastFetchTime.IsZero() {
		summary["last_fetch_time"] = s.lastFetchTime.Format(time.RFC3339)
	}
	if !s.lastChangeTime.IsZero() {
		summary["last_change_time"] = s.lastChangeTime.Format(time.RFC3339)
	}

	return summary
}
