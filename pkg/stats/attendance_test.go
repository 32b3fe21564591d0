package stats

import (
	"testing"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAggregate_ThreeMonthsNewestFirst(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	a := NewAttendanceAggregator()

	summaries := a.Aggregate(nil, nil, now)

	if len(summaries) != 3 {
		t.Fatalf("Expected 3 month buckets, got %d", len(summaries))
	}
	want := []string{"2026-08", "2026-07", "2026-06"}
	for i, s := range summaries {
		if s.Month != want[i] {
			t.Errorf("Bucket %d = %s, want %s", i, s.Month, want[i])
		}
	}
}

func TestAggregate_MonthEndAnchor(t *testing.T) {
	// 3月31日回退不能跳过2月
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.Local)
	a := NewAttendanceAggregator()

	summaries := a.Aggregate(nil, nil, now)

	want := []string{"2026-03", "2026-02", "2026-01"}
	for i, s := range summaries {
		if s.Month != want[i] {
			t.Errorf("Bucket %d = %s, want %s", i, s.Month, want[i])
		}
	}
}

func TestAggregate_Counting(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	a := NewAttendanceAggregator()

	meetings := []*model.Meeting{
		{ID: "m1", Status: "已完成", StartTime: time.Date(2026, 8, 3, 10, 0, 0, 0, time.Local)},
		{ID: "m2", Status: "已完成", StartTime: time.Date(2026, 8, 5, 10, 0, 0, 0, time.Local)},
		{ID: "m3", Status: "请假", StartTime: time.Date(2026, 8, 6, 10, 0, 0, 0, time.Local)},
		{ID: "m4", Status: "已安排", StartTime: time.Date(2026, 8, 7, 10, 0, 0, 0, time.Local)}, // 未完成不计
		{ID: "m5", Status: "已完成", StartTime: time.Date(2026, 7, 20, 10, 0, 0, 0, time.Local)}, // 上月
	}
	tasks := []*model.Task{
		{ID: "t1", DueDate: timePtr(time.Date(2026, 8, 4, 0, 0, 0, 0, time.Local))},
		{ID: "t2", StartDate: timePtr(time.Date(2026, 8, 8, 0, 0, 0, 0, time.Local))}, // 无截止用开始日期
		{ID: "t3", DueDate: timePtr(time.Date(2026, 6, 4, 0, 0, 0, 0, time.Local))},
	}

	summaries := a.Aggregate(meetings, tasks, now)

	cur := summaries[0]
	if cur.Present != 2 || cur.Leave != 1 {
		t.Errorf("Current month: present=%d leave=%d, want 2/1", cur.Present, cur.Leave)
	}
	// 2个任务 * 1.2 = 2.4，出勤未超基线
	if cur.OvertimeHours != 2.4 {
		t.Errorf("Current month overtime = %v, want 2.4", cur.OvertimeHours)
	}

	prev := summaries[1]
	if prev.Present != 1 || prev.Leave != 0 {
		t.Errorf("Previous month: present=%d leave=%d, want 1/0", prev.Present, prev.Leave)
	}
}

func TestAggregate_OvertimeWithExtraPresent(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	a := NewAttendanceAggregator()

	// 7次出勤超基线2次：3*1.2 + 2*0.5 = 4.6
	var meetings []*model.Meeting
	for i := 0; i < 7; i++ {
		meetings = append(meetings, &model.Meeting{
			ID: string(rune('a' + i)), Status: "已完成",
			StartTime: time.Date(2026, 8, i+1, 10, 0, 0, 0, time.Local),
		})
	}
	tasks := []*model.Task{
		{ID: "t1", DueDate: timePtr(time.Date(2026, 8, 2, 0, 0, 0, 0, time.Local))},
		{ID: "t2", DueDate: timePtr(time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local))},
		{ID: "t3", DueDate: timePtr(time.Date(2026, 8, 4, 0, 0, 0, 0, time.Local))},
	}

	summaries := a.Aggregate(meetings, tasks, now)

	if summaries[0].OvertimeHours != 4.6 {
		t.Errorf("Overtime = %v, want 4.6", summaries[0].OvertimeHours)
	}
}

func TestBuildAlerts(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	a := NewAttendanceAggregator()

	// 空月份：中性提示
	empty := a.Aggregate(nil, nil, now)[0]
	if len(empty.Alerts) != 1 || empty.Alerts[0] != "本月暂无考勤数据" {
		t.Errorf("Empty month alerts = %v", empty.Alerts)
	}

	// 有缺勤：异常提示
	meetings := []*model.Meeting{
		{ID: "m1", Status: "缺席", StartTime: time.Date(2026, 8, 3, 10, 0, 0, 0, time.Local)},
	}
	withLeave := a.Aggregate(meetings, nil, now)[0]
	if len(withLeave.Alerts) != 1 || withLeave.Alerts[0] != "本月有 1 场会议未正常执行，请关注考勤异常" {
		t.Errorf("Leave alerts = %v", withLeave.Alerts)
	}

	// 高加班：6个任务 * 1.2 = 7.2 > 6
	var tasks []*model.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, &model.Task{
			ID: string(rune('a' + i)), DueDate: timePtr(time.Date(2026, 8, i+1, 0, 0, 0, 0, time.Local)),
		})
	}
	overtime := a.Aggregate(nil, tasks, now)[0]
	found := false
	for _, alert := range overtime.Alerts {
		if alert == "加班时长偏高，建议平衡工作量分配" {
			found = true
		}
	}
	if !found {
		t.Errorf("Overtime alerts = %v", overtime.Alerts)
	}

	// 正常出勤：平稳提示
	normal := a.Aggregate([]*model.Meeting{
		{ID: "m1", Status: "已完成", StartTime: time.Date(2026, 8, 3, 10, 0, 0, 0, time.Local)},
	}, nil, now)[0]
	if len(normal.Alerts) != 1 || normal.Alerts[0] != "出勤情况平稳" {
		t.Errorf("Normal alerts = %v", normal.Alerts)
	}
}
