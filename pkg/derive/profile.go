package derive

import (
	"strings"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

const trainingKeyword = "培训"

// 时区只做静态标签查表，不做跨时区时间运算
var timezoneLabels = []struct {
	keyword string
	label   string
}{
	{"上海", "GMT+8"},
	{"北京", "GMT+8"},
	{"杭州", "GMT+8"},
	{"深圳", "GMT+8"},
	{"东京", "GMT+9"},
	{"伦敦", "GMT+0"},
	{"纽约", "GMT-5"},
}

const defaultTimezone = "GMT+8"

// BuildProfile 从员工的原始记录及其关联会议、任务推导出排班视图
func BuildProfile(emp *model.Employee, meetings []*model.Meeting, tasks []*model.Task, now time.Time) *model.StaffProfile {
	activeTasks := CountActiveTasks(tasks)
	upcomingMeetings := CountUpcomingMeetings(meetings, now)
	highlights, focus := RankHighlights(tasks, meetings, now)

	return &model.StaffProfile{
		ID:                       emp.ID,
		Name:                     emp.Name,
		Role:                     emp.Position,
		Team:                     emp.Department,
		Workload:                 WorkloadScore(activeTasks, upcomingMeetings, emp.IsPartner),
		Skills:                   emp.Skills,
		Timezone:                 timezoneFor(emp.Location),
		Location:                 emp.Location,
		Availability:             SynthesizeAvailability(meetings, tasks, emp.Location, now),
		Status:                   staffStatus(emp, meetings, now),
		ResponsibilityHighlights: highlights,
		ActiveTaskCount:          activeTasks,
		UpcomingMeetingCount:     upcomingMeetings,
		PrimaryFocus:             focus,
	}
}

// staffStatus 推导员工在岗状态。
// 非在职员工若近期窗口内有培训类会议视为培训中，否则视为请假。
func staffStatus(emp *model.Employee, meetings []*model.Meeting, now time.Time) model.StaffStatus {
	if emp.IsActive {
		return model.StatusOnDuty
	}

	windowStart := now.Add(-availabilityLookback)
	windowEnd := now.Add(availabilityLookahead)
	for _, m := range meetings {
		if m.StartTime.Before(windowStart) || m.StartTime.After(windowEnd) {
			continue
		}
		if strings.Contains(m.MeetingType, trainingKeyword) {
			return model.StatusTraining
		}
	}

	return model.StatusOnLeave
}

// timezoneFor 按地点关键字查表返回时区标签
func timezoneFor(location string) string {
	for _, tz := range timezoneLabels {
		if strings.Contains(location, tz.keyword) {
			return tz.label
		}
	}
	return defaultTimezone
}
