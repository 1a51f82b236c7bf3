package services

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
)

// fingerprintEntry 指纹只覆盖这四个对外可见的字段
type fingerprintEntry struct {
	Token  string `json:"token"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// Fingerprint 计算事件集合的确定性指纹。
// 按集合当前顺序序列化 (token, status, date, time) 元组后取 SHA256。
func Fingerprint(events []NormalizedEvent) string {
	entries := make([]fingerprintEntry, len(events))
	for i, event := range events {
		entries[i] = fingerprintEntry{
			Token:  event.Token,
			Status: event.Status,
			Date:   event.Date,
			Time:   event.Time,
		}
	}

	jsonBytes, err := json.Marshal(entries)
	if err != nil {
		// 纯字符串字段不会序列化失败,保险起见返回空指纹
		return ""
	}

	hash := sha256.Sum256(jsonBytes)
	return fmt.Sprintf("%x", hash[:])
}

// FingerprintTracker 记录最近一次观察到的集合指纹,用于检测可见变化
type FingerprintTracker struct {
	mu   sync.Mutex
	last string
}

// NewFingerprintTracker 创建指纹追踪器
func NewFingerprintTracker() *FingerprintTracker {
	return &FingerprintTracker{}
}

// CheckAndUpdate 计算新集合的指纹并与上一次比较。
// 首次观察不算变化。每次比较后都会刷新存储的指纹,
// 所以同一个变化只会上报一次,之后内容不变的抓取返回 false。
func (t *FingerprintTracker) CheckAndUpdate(events []NormalizedEvent) (changed bool, fingerprint string) {
	fingerprint = Fingerprint(events)

	t.mu.Lock()
	defer t.mu.Unlock()

	changed = t.last != "" && t.last != fingerprint
	t.last = fingerprint
	return changed, fingerprint
}
