package services

import "sort"

// SortEvents 按展示顺序对事件做稳定排序:
// 生效日期降序;同一天内没有时间的排在有时间的前面;
// 都有时间的按时间降序;日期相同且都没有时间的保持原有顺序。
// 必须在状态解析之后调用,排序依据是生效日期/时间而不是原始值。
func SortEvents(events []NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if (a.Time == "") != (b.Time == "") {
			return a.Time == ""
		}
		return a.Time > b.Time
	})
}
