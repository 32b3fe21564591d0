// Package relation 从外键与参与者列表构建员工关联索引
package relation

import (
	"github.com/staffview/staffview/pkg/model"
)

// Index 员工到会议/任务的关联索引
//
// 导师到员工是弱回指关系：参与者只带 MentorID 时，
// 通过导师记录上的 EmployeeID 间接归属到员工。
// 无法解析的引用不产生关联，也不报错。
type Index struct {
	MeetingsByEmployee map[string][]*model.Meeting
	TasksByEmployee    map[string][]*model.Task
}

// Build 构建关联索引
func Build(records *model.RawRecords) *Index {
	idx := &Index{
		MeetingsByEmployee: make(map[string][]*model.Meeting),
		TasksByEmployee:    make(map[string][]*model.Task),
	}

	mentorToEmployee := make(map[string]string, len(records.Mentors))
	for _, m := range records.Mentors {
		if m.EmployeeID != "" {
			mentorToEmployee[m.ID] = m.EmployeeID
		}
	}

	employeeIDs := make(map[string]bool, len(records.Employees))
	for _, e := range records.Employees {
		employeeIDs[e.ID] = true
	}

	for _, meeting := range records.Meetings {
		// 同一会议多个参与者解析到同一员工时只归属一次
		seen := make(map[string]bool)
		for _, p := range meeting.Participants {
			empID := resolveParticipant(p, mentorToEmployee)
			if empID == "" || !employeeIDs[empID] || seen[empID] {
				continue
			}
			seen[empID] = true
			idx.MeetingsByEmployee[empID] = append(idx.MeetingsByEmployee[empID], meeting)
		}
	}

	for _, task := range records.Tasks {
		for _, empID := range task.AssignedTo {
			if !employeeIDs[empID] {
				continue
			}
			idx.TasksByEmployee[empID] = append(idx.TasksByEmployee[empID], task)
		}
	}

	return idx
}

// resolveParticipant 解析参与者归属的员工ID，无法解析返回空串
func resolveParticipant(p model.Participant, mentorToEmployee map[string]string) string {
	if p.EmployeeID != "" {
		return p.EmployeeID
	}
	if p.MentorID != "" {
		return mentorToEmployee[p.MentorID]
	}
	return ""
}

// MeetingsFor 返回员工关联的会议
func (idx *Index) MeetingsFor(employeeID string) []*model.Meeting {
	return idx.MeetingsByEmployee[employeeID]
}

// TasksFor 返回员工关联的任务
func (idx *Index) TasksFor(employeeID string) []*model.Task {
	return idx.TasksByEmployee[employeeID]
}
