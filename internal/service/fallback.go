package service

import (
	"time"

	"github.com/staffview/staffview/pkg/model"
)

// FallbackDataset 返回静态兜底数据集。
// 原始数据源不可用时，界面仍需要有内容可渲染。
func FallbackDataset(now time.Time) *model.Dataset {
	return &model.Dataset{
		Profiles: []*model.StaffProfile{
			{
				ID:       "fallback-001",
				Name:     "示例顾问",
				Role:     "课程顾问",
				Team:     "咨询部",
				Workload: 55,
				Skills:   []string{"课程规划", "家长沟通"},
				Timezone: "GMT+8",
				Location: "上海",
				Availability: []model.Slot{
					{Day: "待排班", Start: "待定", End: "待定", Location: "待确认"},
				},
				Status: model.StatusOnDuty,
				ResponsibilityHighlights: []model.Highlight{
					{
						ID:         "fallback-task-001",
						Title:      "数据源恢复后将展示真实任务",
						Type:       model.HighlightTask,
						Status:     "进行中",
						Importance: model.ImportanceMedium,
					},
				},
				ActiveTaskCount:      1,
				UpcomingMeetingCount: 0,
				PrimaryFocus:         "任务 · 数据源恢复后将展示真实任务",
			},
		},
		Conflicts: []*model.ShiftConflict{
			{
				ID:              "fallback-conflict-001",
				Staff:           "示例顾问",
				Issue:           "排班数据源暂时不可用",
				Impact:          "当前展示的是静态示例数据",
				SuggestedAction: "请检查数据源连接后刷新",
				DetectedAt:      now,
			},
		},
		Attendance: []*model.AttendanceSummary{
			{
				Month:         now.Format("2006-01"),
				Present:       0,
				Leave:         0,
				OvertimeHours: 0,
				Alerts:        []string{"本月暂无考勤数据"},
			},
		},
		FetchedAt: now,
	}
}
