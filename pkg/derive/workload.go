package derive

import (
	"math"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

const (
	// 工作量分数的启发式权重与饱和区间。
	// 分数是代理指标而非实测值，上下界防止展示上出现极端空闲或爆表。
	workloadFloor   = 30
	workloadCeiling = 100

	taskWeight    = 10
	meetingWeight = 12
	partnerBonus  = 6

	// 近 12 小时内开始的会议仍计入"即将到来"
	upcomingMeetingGrace = 12 * time.Hour
)

// WorkloadScore 计算 30-100 的工作量分数
func WorkloadScore(activeTaskCount, upcomingMeetingCount int, isPartner bool) int {
	score := float64(activeTaskCount*taskWeight + upcomingMeetingCount*meetingWeight)
	if isPartner {
		score += partnerBonus
	}

	rounded := int(math.Round(score))
	if rounded < workloadFloor {
		return workloadFloor
	}
	if rounded > workloadCeiling {
		return workloadCeiling
	}
	return rounded
}

// CountActiveTasks 统计进行中的任务数
func CountActiveTasks(tasks []*model.Task) int {
	count := 0
	for _, t := range tasks {
		if t.IsActiveTask() {
			count++
		}
	}
	return count
}

// CountUpcomingMeetings 统计即将到来的会议数
func CountUpcomingMeetings(meetings []*model.Meeting, now time.Time) int {
	cutoff := now.Add(-upcomingMeetingGrace)
	count := 0
	for _, m := range meetings {
		if !m.StartTime.Before(cutoff) {
			count++
		}
	}
	return count
}
