package derive

import (
	"testing"
	"time"

	"github.com/staffview/staffview/pkg/model"
	"pgregory.net/rapid"
)

func TestBuildProfile_Basic(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)

	emp := &model.Employee{
		ID: "e1", Name: "张伟", Position: "高级顾问", Department: "升学规划组",
		Location: "上海", IsActive: true, Skills: []string{"文书", "面试辅导"},
	}
	due := now.Add(24 * time.Hour)
	tasks := []*model.Task{
		{ID: "t1", Title: "写文书初稿", Status: "进行中", Priority: "高", DueDate: &due},
	}
	meetings := []*model.Meeting{
		{ID: "m1", Title: "家长沟通会", MeetingType: "家长会", StartTime: now.Add(2 * time.Hour)},
	}

	p := BuildProfile(emp, meetings, tasks, now)

	if p.ID != "e1" || p.Name != "张伟" || p.Role != "高级顾问" || p.Team != "升学规划组" {
		t.Errorf("Identity fields not carried over: %+v", p)
	}
	if p.Status != model.StatusOnDuty {
		t.Errorf("Active employee should be 在岗, got %s", p.Status)
	}
	if p.Timezone != "GMT+8" {
		t.Errorf("上海 should map to GMT+8, got %s", p.Timezone)
	}
	if p.ActiveTaskCount != 1 || p.UpcomingMeetingCount != 1 {
		t.Errorf("Counts: tasks=%d meetings=%d", p.ActiveTaskCount, p.UpcomingMeetingCount)
	}
	// 1*10 + 1*12 + 30保底以上
	if p.Workload != 30 {
		t.Errorf("Workload = %d, want 30 (floor)", p.Workload)
	}
	if len(p.Availability) == 0 {
		t.Errorf("Availability should never be empty")
	}
	if p.PrimaryFocus != "会议 · 家长沟通会" {
		t.Errorf("PrimaryFocus = %s", p.PrimaryFocus)
	}
}

func TestStaffStatus_InactiveVariants(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)

	inactive := &model.Employee{ID: "e1", Name: "李娜"}

	if got := staffStatus(inactive, nil, now); got != model.StatusOnLeave {
		t.Errorf("Inactive without meetings should be 请假, got %s", got)
	}

	training := []*model.Meeting{
		{ID: "m1", MeetingType: "入职培训", StartTime: now.Add(24 * time.Hour)},
	}
	if got := staffStatus(inactive, training, now); got != model.StatusTraining {
		t.Errorf("Inactive with training meeting should be 培训, got %s", got)
	}

	// 培训会议在窗口外不算
	farTraining := []*model.Meeting{
		{ID: "m2", MeetingType: "培训", StartTime: now.Add(20 * 24 * time.Hour)},
	}
	if got := staffStatus(inactive, farTraining, now); got != model.StatusOnLeave {
		t.Errorf("Out-of-window training should not change status, got %s", got)
	}
}

func TestTimezoneFor(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"上海市浦东新区", "GMT+8"},
		{"东京", "GMT+9"},
		{"伦敦办公室", "GMT+0"},
		{"纽约", "GMT-5"},
		{"火星", "GMT+8"},
		{"", "GMT+8"},
	}

	for _, tt := range tests {
		if got := timezoneFor(tt.location); got != tt.want {
			t.Errorf("timezoneFor(%q) = %s, want %s", tt.location, got, tt.want)
		}
	}
}

func TestBuildProfile_Invariants(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)

	rapid.Check(t, func(t *rapid.T) {
		emp := &model.Employee{
			ID:        rapid.StringMatching(`emp-[0-9]{3}`).Draw(t, "id"),
			Name:      rapid.SampledFrom([]string{"张伟", "李娜", "王强", ""}).Draw(t, "name"),
			Location:  rapid.SampledFrom([]string{"上海", "北京", "东京", "纽约", ""}).Draw(t, "location"),
			IsActive:  rapid.Bool().Draw(t, "isActive"),
			IsPartner: rapid.Bool().Draw(t, "isPartner"),
		}

		taskCount := rapid.IntRange(0, 10).Draw(t, "taskCount")
		tasks := make([]*model.Task, 0, taskCount)
		for i := 0; i < taskCount; i++ {
			due := now.Add(time.Duration(rapid.IntRange(-96, 240).Draw(t, "dueOffset")) * time.Hour)
			tasks = append(tasks, &model.Task{
				ID:       rapid.StringMatching(`task-[0-9]{3}`).Draw(t, "taskID"),
				Title:    "任务",
				Status:   rapid.SampledFrom([]string{"进行中", "待开始", "已完成"}).Draw(t, "taskStatus"),
				Priority: rapid.SampledFrom([]string{"高", "中", "低", ""}).Draw(t, "priority"),
				DueDate:  &due,
			})
		}

		meetingCount := rapid.IntRange(0, 10).Draw(t, "meetingCount")
		meetings := make([]*model.Meeting, 0, meetingCount)
		for i := 0; i < meetingCount; i++ {
			start := now.Add(time.Duration(rapid.IntRange(-96, 240).Draw(t, "startOffset")) * time.Hour)
			meetings = append(meetings, &model.Meeting{
				ID:          rapid.StringMatching(`meet-[0-9]{3}`).Draw(t, "meetingID"),
				Title:       "会议",
				MeetingType: rapid.SampledFrom([]string{"家长会", "例会", "培训", "答辩"}).Draw(t, "meetingType"),
				StartTime:   start,
			})
		}

		p := BuildProfile(emp, meetings, tasks, now)

		if p.Workload < 30 || p.Workload > 100 {
			t.Fatalf("Workload %d out of [30,100]", p.Workload)
		}
		if len(p.Availability) < 1 {
			t.Fatalf("Availability must have at least one slot")
		}
		if len(p.ResponsibilityHighlights) > 4 {
			t.Fatalf("Highlights %d exceed cap", len(p.ResponsibilityHighlights))
		}
		for i := 1; i < len(p.ResponsibilityHighlights); i++ {
			prev := p.ResponsibilityHighlights[i-1].DueAt
			cur := p.ResponsibilityHighlights[i].DueAt
			if prev == nil && cur != nil {
				t.Fatalf("Highlights with due time must sort before undated ones")
			}
			if prev != nil && cur != nil && cur.Before(*prev) {
				t.Fatalf("Highlights must be sorted by due time")
			}
		}
		if len(p.ResponsibilityHighlights) == 0 && p.PrimaryFocus != "暂无重点任务" {
			t.Fatalf("Empty highlights must yield 暂无重点任务, got %s", p.PrimaryFocus)
		}
	})
}
