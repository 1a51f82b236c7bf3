package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"airdrop-service/feed"
)

// handleFetchData 返回缓存或新刷新的空投数据。
// 真正发生刷新时响应里附加 hasChanges 和 lastUpdateTime;
// 缓存命中时原样返回上次刷新的数据,不再附加这两个字段。
func (s *Server) handleFetchData(w http.ResponseWriter, r *http.Request) {
	snap, refreshed, err := s.refresher.GetOrRefresh()
	if err != nil {
		log.Printf("[API] Failed to fetch airdrop data: %v", err)
		s.writeFetchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if !refreshed {
		json.NewEncoder(w).Encode(snap.Data)
		return
	}

	body := make(map[string]interface{}, len(snap.Data)+2)
	for key, value := range snap.Data {
		body[key] = value
	}
	body["hasChanges"] = snap.HasChanges
	body["lastUpdateTime"] = snap.FetchedAt.Format(time.RFC3339)

	json.NewEncoder(w).Encode(body)
}

// handleLastUpdate 返回最近一次成功抓取的时间
func (s *Server) handleLastUpdate(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"lastFetchTime": nil,
		"hasCachedData": false,
	}

	if snap := s.refresher.Store().Get(); snap != nil {
		response["lastFetchTime"] = snap.FetchedAt.Format(time.RFC3339)
		response["hasCachedData"] = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleStats 返回抓取统计
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.refresher.Stats().Summary())
}

// handleForceRefresh 跳过缓存有效期,立即执行一次刷新
func (s *Server) handleForceRefresh(w http.ResponseWriter, r *http.Request) {
	log.Printf("[API] Manual refresh triggered")

	snap, err := s.refresher.Refresh()
	if err != nil {
		log.Printf("[API] Manual refresh failed: %v", err)
		s.writeFetchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"refreshed":      true,
		"hasChanges":     snap.HasChanges,
		"lastUpdateTime": snap.FetchedAt.Format(time.RFC3339),
		"fetchId":        snap.FetchID,
	})
}

// writeFetchError 按统一格式输出上游/内部错误
func (s *Server) writeFetchError(w http.ResponseWriter, err error) {
	errType := "internal"
	var feedErr *feed.FeedError
	if errors.As(err, &feedErr) {
		errType = feedErr.Kind
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"details": map[string]interface{}{
			"type":      errType,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}
