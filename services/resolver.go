package services

import (
	"strconv"
	"strings"
	"time"

	"airdrop-service/feed"
)

// 事件生命周期状态
const (
	StatusAnnounced = "announced"
	StatusCompleted = "completed"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// phase 2 的空投按上游惯例在公布时间 18 小时后才实际开放
	shiftedPhase   = 2
	phaseTimeShift = 18 * time.Hour
)

// NormalizedEvent 经过状态解析的空投事件
type NormalizedEvent struct {
	Token          string `json:"token"`
	Phase          *int   `json:"phase,omitempty"`
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	Status         string `json:"status"`
	OriginalStatus string `json:"original_status,omitempty"`
}

// Resolver 时移与状态解析器。所有日期计算使用同一个固定时区。
type Resolver struct {
	loc *time.Location
}

// NewResolver 创建状态解析器
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

// Resolve 把一条原始事件转换为带生效日期/时间和计算状态的事件。
// 状态只由生效日期/时间和 now 决定,从不采信上游的 status 字段;
// 上游状态原样保留在 original_status 里。
func (r *Resolver) Resolve(raw feed.RawEvent, now time.Time) NormalizedEvent {
	event := NormalizedEvent{
		Token:          raw.Token,
		Phase:          raw.Phase,
		Date:           raw.Date,
		Time:           raw.Time,
		OriginalStatus: raw.Status,
	}

	// phase 2: 生效时间 = 公布时间 + 18 小时
	if raw.Phase != nil && *raw.Phase == shiftedPhase && raw.Date != "" {
		if base, ok := r.combine(raw.Date, raw.Time); ok {
			shifted := base.Add(phaseTimeShift)
			event.Date = shifted.Format(dateLayout)
			event.Time = shifted.Format(timeLayout)
		}
	}

	now = now.In(r.loc)
	eventDay, err := time.ParseInLocation(dateLayout, event.Date, r.loc)
	if err != nil {
		// 无法确定生效日期时不给出生命周期判断,透传上游状态
		event.Status = raw.Status
		return event
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)

	switch {
	case eventDay.Before(today):
		event.Status = StatusCompleted
	case eventDay.After(today):
		event.Status = StatusAnnounced
	default:
		if event.Time == "" {
			event.Status = StatusAnnounced
			break
		}
		hour, minute := parseClock(event.Time)
		instant := eventDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		if instant.After(now) {
			event.Status = StatusAnnounced
		} else {
			event.Status = StatusCompleted
		}
	}

	return event
}

// combine 把日期和时间合成一个时刻。日期非法时返回 false,时间非法按 00:00 处理。
func (r *Resolver) combine(date, clock string) (time.Time, bool) {
	day, err := time.ParseInLocation(dateLayout, date, r.loc)
	if err != nil {
		return time.Time{}, false
	}
	hour, minute := parseClock(clock)
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
}

// parseClock 解析 HH:MM,缺失或非法的部分按 0 处理
func parseClock(clock string) (hour, minute int) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) > 0 {
		hour, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}
