package model

import (
	"time"
)

// StaffStatus 员工在岗状态
type StaffStatus string

const (
	StatusOnDuty   StaffStatus = "在岗"
	StatusOnLeave  StaffStatus = "请假"
	StatusTraining StaffStatus = "培训"
)

// Importance 重点程度
type Importance string

const (
	ImportanceHigh   Importance = "高"
	ImportanceMedium Importance = "中"
	ImportanceLow    Importance = "低"
)

// HighlightType 重点事项类型
type HighlightType string

const (
	HighlightTask    HighlightType = "任务"
	HighlightMeeting HighlightType = "会议"
)

// Slot 一条可视化的空闲/占用时段
type Slot struct {
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
}

// Highlight 员工当前的重点事项（任务或会议）
type Highlight struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        HighlightType `json:"type"`
	Status      string        `json:"status"`
	DueAt       *time.Time    `json:"due_at,omitempty"`
	Importance  Importance    `json:"importance"`
	Description string        `json:"description,omitempty"`
}

// StaffProfile 派生出的员工排班视图
type StaffProfile struct {
	ID                       string      `json:"id"`
	Name                     string      `json:"name"`
	Role                     string      `json:"role"`
	Team                     string      `json:"team"`
	Workload                 int         `json:"workload"` // 30-100
	Skills                   []string    `json:"skills"`
	Timezone                 string      `json:"timezone"`
	Location                 string      `json:"location"`
	Availability             []Slot      `json:"availability"` // 至少一条
	Status                   StaffStatus `json:"status"`
	ResponsibilityHighlights []Highlight `json:"responsibility_highlights"` // 最多4条
	ActiveTaskCount          int         `json:"active_task_count"`
	UpcomingMeetingCount     int         `json:"upcoming_meeting_count"`
	PrimaryFocus             string      `json:"primary_focus"`
}

// ShiftConflict 检测出的排班风险
type ShiftConflict struct {
	ID              string    `json:"id"`
	Staff           string    `json:"staff"`
	Issue           string    `json:"issue"`
	Impact          string    `json:"impact"`
	SuggestedAction string    `json:"suggested_action"`
	DetectedAt      time.Time `json:"detected_at"`
}

// AttendanceSummary 单个月的出勤汇总
type AttendanceSummary struct {
	Month         string   `json:"month"` // YYYY-MM
	Present       int      `json:"present"`
	Leave         int      `json:"leave"`
	OvertimeHours float64  `json:"overtime_hours"`
	Alerts        []string `json:"alerts"`
}

// Dataset 一次推导产出的完整数据集
type Dataset struct {
	Profiles   []*StaffProfile      `json:"profiles"`
	Conflicts  []*ShiftConflict     `json:"conflicts"`
	Attendance []*AttendanceSummary `json:"attendance"`
	FetchedAt  time.Time            `json:"fetched_at"`
}
