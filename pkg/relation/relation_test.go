package relation

import (
	"testing"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

func testRecords() *model.RawRecords {
	return &model.RawRecords{
		Employees: []*model.Employee{
			{ID: "e1", Name: "张伟"},
			{ID: "e2", Name: "李娜"},
		},
		Mentors: []*model.Mentor{
			{ID: "mt1", EmployeeID: "e2", Name: "李娜"},
			{ID: "mt2", Name: "外部导师"}, // 未关联员工
		},
		Meetings: []*model.Meeting{
			{
				ID:        "m1",
				Title:     "项目启动会",
				StartTime: time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local),
				Participants: []model.Participant{
					{EmployeeID: "e1"},
					{MentorID: "mt1"},
				},
			},
			{
				ID:        "m2",
				Title:     "导师例会",
				StartTime: time.Date(2026, 8, 11, 10, 0, 0, 0, time.Local),
				Participants: []model.Participant{
					{MentorID: "mt2"},       // 导师无员工映射
					{EmployeeID: "ghost"},   // 不存在的员工
					{},                      // 空引用
				},
			},
		},
		Tasks: []*model.Task{
			{ID: "t1", Title: "写方案", AssignedTo: []string{"e1", "e2"}},
			{ID: "t2", Title: "无主任务", AssignedTo: []string{"nobody"}},
		},
	}
}

func TestBuild_DirectAndMentorResolution(t *testing.T) {
	idx := Build(testRecords())

	if got := idx.MeetingsFor("e1"); len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("e1 should have meeting m1, got %+v", got)
	}
	// 导师引用通过 EmployeeID 间接归属
	if got := idx.MeetingsFor("e2"); len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("e2 should have meeting m1 via mentor, got %+v", got)
	}
}

func TestBuild_UnresolvableParticipantsSkipped(t *testing.T) {
	idx := Build(testRecords())

	for empID, meetings := range idx.MeetingsByEmployee {
		for _, m := range meetings {
			if m.ID == "m2" {
				t.Errorf("Meeting m2 should not be attributed to anyone, got %s", empID)
			}
		}
	}
}

func TestBuild_DuplicateResolutionCountsOnce(t *testing.T) {
	records := testRecords()
	// e2 既是直接参与者又是导师 mt1 的映射目标
	records.Meetings[0].Participants = append(records.Meetings[0].Participants, model.Participant{EmployeeID: "e2"})

	idx := Build(records)

	if got := idx.MeetingsFor("e2"); len(got) != 1 {
		t.Errorf("Duplicate resolution should attribute meeting once, got %d", len(got))
	}
}

func TestBuild_TaskFanOut(t *testing.T) {
	idx := Build(testRecords())

	if got := idx.TasksFor("e1"); len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("e1 should have task t1, got %+v", got)
	}
	if got := idx.TasksFor("e2"); len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("e2 should have task t1, got %+v", got)
	}
	if got := idx.TasksFor("nobody"); got != nil {
		t.Errorf("Unknown assignee should produce no index entry, got %+v", got)
	}
}
