// Package validator 提供排班冲突检测功能
package validator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/staffview/staffview/pkg/model"
)

// ConflictType 冲突类型
type ConflictType string

const (
	ConflictOverlap        ConflictType = "overlap"         // 会议时间重叠
	ConflictTaskBottleneck ConflictType = "task_bottleneck" // 任务集中到期
	ConflictStatusMismatch ConflictType = "status_mismatch" // 状态与日程不符
	ConflictOverload       ConflictType = "overload"        // 工作量过载
)

// DetectorConfig 检测器配置
type DetectorConfig struct {
	DefaultMeetingDuration time.Duration // 会议无结束时间时的默认时长
	BottleneckWindow       time.Duration // 任务集中到期的观察窗口
	BottleneckTaskCount    int           // 触发瓶颈告警的到期任务数
	OverloadThreshold      int           // 工作量过载阈值
}

// DefaultDetectorConfig 返回默认配置
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		DefaultMeetingDuration: 60 * time.Minute,
		BottleneckWindow:       48 * time.Hour,
		BottleneckTaskCount:    2,
		OverloadThreshold:      85,
	}
}

// ConflictDetector 冲突检测器。
// 检测只做提示，不阻断也不修改任何视图数据。
type ConflictDetector struct {
	config *DetectorConfig
}

// NewConflictDetector 创建冲突检测器
func NewConflictDetector(config *DetectorConfig) *ConflictDetector {
	if config == nil {
		config = DefaultDetectorConfig()
	}
	return &ConflictDetector{config: config}
}

// DetectAll 对全部员工视图执行检测，同一轮检测共享检测时间戳
func (d *ConflictDetector) DetectAll(
	profiles []*model.StaffProfile,
	meetingsByEmployee map[string][]*model.Meeting,
	tasksByEmployee map[string][]*model.Task,
	now time.Time,
) []*model.ShiftConflict {
	var conflicts []*model.ShiftConflict

	for _, profile := range profiles {
		conflicts = append(conflicts, d.DetectForProfile(
			profile,
			meetingsByEmployee[profile.ID],
			tasksByEmployee[profile.ID],
			now,
		)...)
	}

	return conflicts
}

// DetectForProfile 对单个员工视图独立评估四类规则，命中多少报多少
func (d *ConflictDetector) DetectForProfile(
	profile *model.StaffProfile,
	meetings []*model.Meeting,
	tasks []*model.Task,
	now time.Time,
) []*model.ShiftConflict {
	var conflicts []*model.ShiftConflict

	conflicts = append(conflicts, d.detectMeetingOverlaps(profile, meetings, now)...)
	if c := d.detectTaskBottleneck(profile, tasks, now); c != nil {
		conflicts = append(conflicts, c)
	}
	if c := d.detectStatusMismatch(profile, meetings, now); c != nil {
		conflicts = append(conflicts, c)
	}
	if c := d.detectOverload(profile, now); c != nil {
		conflicts = append(conflicts, c)
	}

	return conflicts
}

// detectMeetingOverlaps 检测相邻会议的时间重叠
func (d *ConflictDetector) detectMeetingOverlaps(profile *model.StaffProfile, meetings []*model.Meeting, now time.Time) []*model.ShiftConflict {
	if len(meetings) < 2 {
		return nil
	}

	sorted := make([]*model.Meeting, len(meetings))
	copy(sorted, meetings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var conflicts []*model.ShiftConflict
	for i := 0; i < len(sorted)-1; i++ {
		current := sorted[i]
		next := sorted[i+1]

		currentEnd := current.EffectiveEnd(d.config.DefaultMeetingDuration)
		// 相邻首尾刚好衔接不算重叠
		if !next.StartTime.Before(currentEnd) {
			continue
		}

		conflicts = append(conflicts, &model.ShiftConflict{
			ID:    uuid.New().String(),
			Staff: profile.Name,
			Issue: fmt.Sprintf("会议「%s」(%s-%s) 与「%s」(%s-%s) 时间重叠",
				current.Title, clock(current.StartTime), clock(currentEnd),
				next.Title, clock(next.StartTime), clock(next.EffectiveEnd(d.config.DefaultMeetingDuration))),
			Impact:          "会议撞期，可能缺席其中一场",
			SuggestedAction: "建议改派参会人或调整其中一场会议时间",
			DetectedAt:      now,
		})
	}

	return conflicts
}

// detectTaskBottleneck 检测短期内任务集中到期
func (d *ConflictDetector) detectTaskBottleneck(profile *model.StaffProfile, tasks []*model.Task, now time.Time) *model.ShiftConflict {
	deadline := now.Add(d.config.BottleneckWindow)

	dueSoon := 0
	for _, t := range tasks {
		if !t.IsActiveTask() || t.DueDate == nil {
			continue
		}
		if t.DueDate.After(now.Add(-d.config.BottleneckWindow)) && !t.DueDate.After(deadline) {
			dueSoon++
		}
	}

	if dueSoon < d.config.BottleneckTaskCount {
		return nil
	}

	return &model.ShiftConflict{
		ID:              uuid.New().String(),
		Staff:           profile.Name,
		Issue:           fmt.Sprintf("48小时内有 %d 个进行中任务到期", dueSoon),
		Impact:          "任务集中到期，存在延期风险",
		SuggestedAction: "建议将部分任务重新分配给其他成员",
		DetectedAt:      now,
	}
}

// detectStatusMismatch 检测非在岗员工仍有未来会议安排
func (d *ConflictDetector) detectStatusMismatch(profile *model.StaffProfile, meetings []*model.Meeting, now time.Time) *model.ShiftConflict {
	if profile.Status == model.StatusOnDuty {
		return nil
	}

	hasFutureMeeting := false
	for _, m := range meetings {
		if m.StartTime.After(now) {
			hasFutureMeeting = true
			break
		}
	}
	if !hasFutureMeeting {
		return nil
	}

	return &model.ShiftConflict{
		ID:              uuid.New().String(),
		Staff:           profile.Name,
		Issue:           fmt.Sprintf("员工状态为「%s」但仍有未来会议安排", profile.Status),
		Impact:          "日程未处理，会议可能无人出席",
		SuggestedAction: "建议确认该员工离岗期间的会议安排",
		DetectedAt:      now,
	}
}

// detectOverload 检测工作量过载
func (d *ConflictDetector) detectOverload(profile *model.StaffProfile, now time.Time) *model.ShiftConflict {
	if profile.Workload < d.config.OverloadThreshold {
		return nil
	}

	return &model.ShiftConflict{
		ID:              uuid.New().String(),
		Staff:           profile.Name,
		Issue:           fmt.Sprintf("工作量达到 %d%%", profile.Workload),
		Impact:          "持续高负荷，影响交付质量",
		SuggestedAction: "建议近期暂缓向该员工分配新任务",
		DetectedAt:      now,
	}
}

// clock 格式化时刻
func clock(t time.Time) string {
	return t.Format("15:04")
}
