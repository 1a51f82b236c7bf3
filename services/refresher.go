package services

import (
	"time"

	"github.com/google/uuid"

	"airdrop-service/feed"
	"airdrop-service/logger"
)

// Fetcher 上游数据源。测试里用假实现注入。
type Fetcher interface {
	FetchAirdrops() (*feed.Payload, error)
}

// Refresher 抓取与缓存协调器。
// 维护唯一的快照槽,按需和定时两条路径都通过 Refresh 整体替换快照。
// 两条路径之间不做互斥,并发刷新时后完成的覆盖先完成的。
type Refresher struct {
	fetcher   Fetcher
	resolver  *Resolver
	tracker   *FingerprintTracker
	store     *SnapshotStore
	stats     *FetchStats
	freshness time.Duration
	interval  time.Duration
	stopChan  chan struct{}
}

// NewRefresher 创建协调器
func NewRefresher(fetcher Fetcher, resolver *Resolver, freshness, interval time.Duration) *Refresher {
	return &Refresher{
		fetcher:   fetcher,
		resolver:  resolver,
		tracker:   NewFingerprintTracker(),
		store:     NewSnapshotStore(),
		stats:     NewFetchStats(),
		freshness: freshness,
		interval:  interval,
		stopChan:  make(chan struct{}),
	}
}

// Store 暴露快照槽给只读调用方
func (r *Refresher) Store() *SnapshotStore {
	return r.store
}

// Stats 暴露抓取统计
func (r *Refresher) Stats() *FetchStats {
	return r.stats
}

// Refresh 执行一次完整刷新: 抓取上游、逐条解析状态、排序、
// 计算变更指纹,然后整体替换快照。失败时保留旧快照。
func (r *Refresher) Refresh() (*Snapshot, error) {
	fetchID := uuid.New().String()

	payload, err := r.fetcher.FetchAirdrops()
	if err != nil {
		r.stats.RecordFailure()
		metricFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	now := time.Now()
	events := make([]NormalizedEvent, 0, len(payload.Airdrops))
	for _, raw := range payload.Airdrops {
		events = append(events, r.resolver.Resolve(raw, now))
	}
	SortEvents(events)

	changed, fingerprint := r.tracker.CheckAndUpdate(events)

	data := make(map[string]interface{}, len(payload.Extra)+1)
	for key, value := range payload.Extra {
		data[key] = value
	}
	data["airdrops"] = events

	snap := &Snapshot{
		Data:        data,
		FetchedAt:   now,
		Fingerprint: fingerprint,
		HasChanges:  changed,
		FetchID:     fetchID,
	}
	r.store.Set(snap)

	r.stats.RecordFetch(len(events), changed)
	metricFetchesTotal.WithLabelValues("success").Inc()
	metricLastSuccessTS.SetToCurrentTime()
	metricEventCount.Set(float64(len(events)))

	if changed {
		metricChangesTotal.Inc()
		logger.Printf("[Refresher] 🔔 Change detected in airdrop feed (%d events, fetch=%s)", len(events), fetchID)
	} else {
		logger.Printf("[Refresher] ✅ Feed refreshed, no visible change (%d events, fetch=%s)", len(events), fetchID)
	}

	return snap, nil
}

// GetOrRefresh 返回有效期内的缓存快照,过期或没有时先刷新。
// 第二个返回值表示本次调用是否真的刷新了。
func (r *Refresher) GetOrRefresh() (*Snapshot, bool, error) {
	if snap, fresh := r.store.Fresh(time.Now(), r.freshness); fresh {
		r.stats.RecordCacheHit()
		metricCacheRequests.WithLabelValues("hit").Inc()
		return snap, false, nil
	}

	r.stats.RecordCacheMiss()
	metricCacheRequests.WithLabelValues("miss").Inc()

	snap, err := r.Refresh()
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

// Start 启动后台刷新循环: 启动时立即刷新一次,之后按固定间隔无条件刷新。
// 定时刷新失败只记日志,不中断循环,旧快照继续可用。
func (r *Refresher) Start() {
	go r.loop()
	logger.Printf("[Refresher] ✅ Background refresh started (interval %s)", r.interval)
}

// Stop 停止后台刷新循环
func (r *Refresher) Stop() {
	close(r.stopChan)
}

func (r *Refresher) loop() {
	if _, err := r.Refresh(); err != nil {
		logger.Errorf("[Refresher] ❌ Initial refresh failed: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.Refresh(); err != nil {
				logger.Errorf("[Refresher] ❌ Scheduled refresh failed: %v", err)
			}
		case <-r.stopChan:
			return
		}
	}
}
