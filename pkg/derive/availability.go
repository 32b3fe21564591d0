package derive

import (
	"sort"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

const (
	availabilityLookback  = 48 * time.Hour
	availabilityLookahead = 10 * 24 * time.Hour

	maxMeetingSlots = 5
	// 会议时段不足此数时用任务时段补足
	meetingSlotFloor = 3
	maxBackfillSlots = 3

	defaultMeetingDuration = 60 * time.Minute
	highPriorityTaskSlot   = 120 * time.Minute
	normalTaskSlot         = 90 * time.Minute

	clockLayout = "15:04"
)

var weekdayNames = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// 占位时段文案
const (
	placeholderDay      = "待排班"
	placeholderTime     = "待定"
	placeholderLocation = "待确认"
	onlineMeetingLabel  = "线上会议"
)

// SynthesizeAvailability 将员工近期的会议和任务合成为可展示的时段列表。
// 结果永不为空：没有任何真实数据时返回一条占位时段。
func SynthesizeAvailability(meetings []*model.Meeting, tasks []*model.Task, fallbackLocation string, now time.Time) []model.Slot {
	windowStart := now.Add(-availabilityLookback)
	windowEnd := now.Add(availabilityLookahead)

	var inWindow []*model.Meeting
	for _, m := range meetings {
		if !m.StartTime.Before(windowStart) && !m.StartTime.After(windowEnd) {
			inWindow = append(inWindow, m)
		}
	}
	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].StartTime.Before(inWindow[j].StartTime)
	})

	var slots []model.Slot
	for _, m := range inWindow {
		if len(slots) >= maxMeetingSlots {
			break
		}
		slots = append(slots, meetingSlot(m, fallbackLocation))
	}

	// 真实会议优先；只有会议时段稀少时才用任务截止时间补足
	if len(slots) < meetingSlotFloor {
		slots = backfillTaskSlots(slots, tasks, fallbackLocation, windowStart, windowEnd)
	}

	if len(slots) == 0 {
		loc := fallbackLocation
		if loc == "" {
			loc = placeholderLocation
		}
		slots = append(slots, model.Slot{
			Day:      placeholderDay,
			Start:    placeholderTime,
			End:      placeholderTime,
			Location: loc,
		})
	}

	return slots
}

// meetingSlot 将会议转换为时段
func meetingSlot(m *model.Meeting, fallbackLocation string) model.Slot {
	location := m.Location
	if location == "" {
		if m.MeetingLink != "" {
			location = onlineMeetingLabel
		} else {
			location = fallbackLocation
		}
	}

	return model.Slot{
		Day:      weekdayNames[int(m.StartTime.Weekday())],
		Start:    m.StartTime.Format(clockLayout),
		End:      m.EffectiveEnd(defaultMeetingDuration).Format(clockLayout),
		Location: location,
	}
}

// backfillTaskSlots 用窗口内到期的任务补足时段，合计不超过 maxBackfillSlots 条
func backfillTaskSlots(slots []model.Slot, tasks []*model.Task, fallbackLocation string, windowStart, windowEnd time.Time) []model.Slot {
	var due []*model.Task
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(windowStart) || t.DueDate.After(windowEnd) {
			continue
		}
		due = append(due, t)
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].DueDate.Before(*due[j].DueDate)
	})

	for _, t := range due {
		if len(slots) >= maxBackfillSlots {
			break
		}

		duration := normalTaskSlot
		if TaskImportance(t.Priority) == model.ImportanceHigh {
			duration = highPriorityTaskSlot
		}

		slots = append(slots, model.Slot{
			Day:      weekdayNames[int(t.DueDate.Weekday())],
			Start:    t.DueDate.Format(clockLayout),
			End:      t.DueDate.Add(duration).Format(clockLayout),
			Location: fallbackLocation,
		})
	}

	return slots
}
