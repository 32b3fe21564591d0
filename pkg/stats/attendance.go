// Package stats 提供出勤统计分析
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

const (
	monthsCovered = 3
	monthLayout   = "2006-01"

	// 出勤满勤基线，超出部分按半小时折算加班
	presentBaseline  = 5
	taskOvertimeRate = 1.2
	extraPresentRate = 0.5

	overtimeAlertHours = 6
)

// 会议完成状态
const meetingStatusDone = "已完成"

// 视为缺勤的会议状态
var leaveStatuses = map[string]bool{
	"缺席": true,
	"取消": true,
	"请假": true,
	"旷班": true,
}

// AttendanceAggregator 出勤聚合器
type AttendanceAggregator struct{}

// NewAttendanceAggregator 创建出勤聚合器
func NewAttendanceAggregator() *AttendanceAggregator {
	return &AttendanceAggregator{}
}

// Aggregate 按当前月及之前两个月分桶统计出勤、缺勤与加班
func (a *AttendanceAggregator) Aggregate(meetings []*model.Meeting, tasks []*model.Task, now time.Time) []*model.AttendanceSummary {
	summaries := make([]*model.AttendanceSummary, 0, monthsCovered)

	// 以月初为锚点做月份回退，避免月末日期回退时跳月
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := 0; i < monthsCovered; i++ {
		monthStart := anchor.AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		summaries = append(summaries, a.summarizeMonth(monthStart, monthEnd, meetings, tasks))
	}

	return summaries
}

// summarizeMonth 统计单个月份
func (a *AttendanceAggregator) summarizeMonth(monthStart, monthEnd time.Time, meetings []*model.Meeting, tasks []*model.Task) *model.AttendanceSummary {
	present := 0
	leave := 0
	for _, m := range meetings {
		if m.StartTime.Before(monthStart) || !m.StartTime.Before(monthEnd) {
			continue
		}
		switch {
		case m.Status == meetingStatusDone:
			present++
		case leaveStatuses[m.Status]:
			leave++
		}
	}

	taskCount := 0
	for _, t := range tasks {
		d := t.RelevantDate()
		if d == nil || d.Before(monthStart) || !d.Before(monthEnd) {
			continue
		}
		taskCount++
	}

	overtime := float64(taskCount)*taskOvertimeRate + math.Max(float64(present-presentBaseline), 0)*extraPresentRate
	overtime = round10(math.Max(overtime, 0))

	summary := &model.AttendanceSummary{
		Month:         monthStart.Format(monthLayout),
		Present:       present,
		Leave:         leave,
		OvertimeHours: overtime,
	}
	summary.Alerts = a.buildAlerts(summary, taskCount)

	return summary
}

// buildAlerts 生成告警，没有异常时补一条中性状态提示
func (a *AttendanceAggregator) buildAlerts(s *model.AttendanceSummary, taskCount int) []string {
	var alerts []string

	if s.Leave > 0 {
		alerts = append(alerts, fmt.Sprintf("本月有 %d 场会议未正常执行，请关注考勤异常", s.Leave))
	}
	if s.OvertimeHours > overtimeAlertHours {
		alerts = append(alerts, "加班时长偏高，建议平衡工作量分配")
	}

	if len(alerts) == 0 {
		if s.Present > 0 || taskCount > 0 {
			alerts = append(alerts, "出勤情况平稳")
		} else {
			alerts = append(alerts, "本月暂无考勤数据")
		}
	}

	return alerts
}

// round10 保留一位小数
func round10(v float64) float64 {
	return math.Round(v*10) / 10
}
