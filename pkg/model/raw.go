// Package model 定义排班推导引擎的核心数据模型
package model

import (
	"time"
)

// Employee 员工（原始记录，外部存储所有）
type Employee struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Position   string   `json:"position" db:"position"`
	Department string   `json:"department" db:"department"`
	Email      string   `json:"email,omitempty" db:"email"`
	Location   string   `json:"location,omitempty" db:"location"`
	IsActive   bool     `json:"is_active" db:"is_active"`
	IsPartner  bool     `json:"is_partner" db:"is_partner"`
	Skills     []string `json:"skills,omitempty" db:"skills"`
	AvatarURL  string   `json:"avatar_url,omitempty" db:"avatar_url"`
}

// Mentor 导师（通过 EmployeeID 弱关联到员工，不拥有员工）
type Mentor struct {
	ID              string   `json:"id" db:"id"`
	EmployeeID      string   `json:"employee_id,omitempty" db:"employee_id"`
	Name            string   `json:"name" db:"name"`
	ServiceScope    []string `json:"service_scope,omitempty" db:"service_scope"`
	Specializations []string `json:"specializations,omitempty" db:"specializations"`
	Bio             string   `json:"bio,omitempty" db:"bio"`
	Location        string   `json:"location,omitempty" db:"location"`
	AvatarURL       string   `json:"avatar_url,omitempty" db:"avatar_url"`
}

// Participant 会议参与者（员工引用或导师引用，二者取其一）
type Participant struct {
	EmployeeID string `json:"employee_id,omitempty"`
	MentorID   string `json:"mentor_id,omitempty"`
}

// Meeting 会议
type Meeting struct {
	ID           string        `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	MeetingType  string        `json:"meeting_type" db:"meeting_type"`
	Status       string        `json:"status" db:"status"`
	StartTime    time.Time     `json:"start_time" db:"start_time"`
	EndTime      *time.Time    `json:"end_time,omitempty" db:"end_time"`
	Location     string        `json:"location,omitempty" db:"location"`
	MeetingLink  string        `json:"meeting_link,omitempty" db:"meeting_link"`
	Participants []Participant `json:"participants" db:"participants"`
}

// EffectiveEnd 返回会议结束时间，未填写时按默认时长推算
func (m *Meeting) EffectiveEnd(defaultDuration time.Duration) time.Time {
	if m.EndTime != nil {
		return *m.EndTime
	}
	return m.StartTime.Add(defaultDuration)
}

// Task 任务
type Task struct {
	ID         string     `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Status     string     `json:"status" db:"status"`
	Priority   string     `json:"priority" db:"priority"`
	StartDate  *time.Time `json:"start_date,omitempty" db:"start_date"`
	DueDate    *time.Time `json:"due_date,omitempty" db:"due_date"`
	AssignedTo []string   `json:"assigned_to" db:"assigned_to"`
}

// TaskStatusDone 任务完成状态
const TaskStatusDone = "已完成"

// IsActiveTask 检查任务是否仍在进行中
func (t *Task) IsActiveTask() bool {
	return t.Status != TaskStatusDone
}

// RelevantDate 返回任务的归属日期（优先截止日期）
func (t *Task) RelevantDate() *time.Time {
	if t.DueDate != nil {
		return t.DueDate
	}
	return t.StartDate
}

// RawRecords 一次刷新读取到的全部原始记录快照
type RawRecords struct {
	Employees []*Employee
	Mentors   []*Mentor
	Meetings  []*Meeting
	Tasks     []*Task
}
