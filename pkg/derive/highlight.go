package derive

import (
	"fmt"
	"sort"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

const (
	maxHighlights = 4
	// 过去 1 小时内开始的会议仍可作为重点事项
	highlightMeetingGrace = time.Hour

	// 合并列表为空时的重点文案
	noFocusLabel = "暂无重点任务"
)

// RankHighlights 合并员工的进行中任务与近期会议，按时间排序取前几条重点事项，
// 并推导出当前的首要工作重点。
func RankHighlights(tasks []*model.Task, meetings []*model.Meeting, now time.Time) ([]model.Highlight, string) {
	var merged []model.Highlight

	for _, t := range tasks {
		if !t.IsActiveTask() {
			continue
		}
		merged = append(merged, model.Highlight{
			ID:         t.ID,
			Title:      t.Title,
			Type:       model.HighlightTask,
			Status:     t.Status,
			DueAt:      t.DueDate,
			Importance: TaskImportance(t.Priority),
		})
	}

	cutoff := now.Add(-highlightMeetingGrace)
	for _, m := range meetings {
		if m.StartTime.Before(cutoff) {
			continue
		}
		start := m.StartTime
		merged = append(merged, model.Highlight{
			ID:          m.ID,
			Title:       m.Title,
			Type:        model.HighlightMeeting,
			Status:      m.Status,
			DueAt:       &start,
			Importance:  MeetingImportance(m.MeetingType),
			Description: m.Location,
		})
	}

	// 按到期/开始时间升序，无时间的排最后
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].DueAt, merged[j].DueAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	if len(merged) == 0 {
		return nil, noFocusLabel
	}

	if len(merged) > maxHighlights {
		merged = merged[:maxHighlights]
	}

	focus := fmt.Sprintf("%s · %s", merged[0].Type, merged[0].Title)
	return merged, focus
}
