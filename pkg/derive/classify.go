// Package derive 将原始员工、会议、任务记录推导为排班视图
package derive

import (
	"strings"

	"github.com/staffview/staffview/pkg/model"
)

// 重点程度的关键词集合。
// 关键词分类本质上是模糊启发式，集合在此集中定义以便调整。
var (
	highMeetingKeywords = []string{"答辩", "家长", "签约", "面试", "冲刺"}
	lowMeetingKeywords  = []string{"例会", "周会", "更新"}

	highPriorityKeyword = "高"
	lowPriorityKeyword  = "低"
)

// TaskImportance 根据任务优先级文本分类重点程度
func TaskImportance(priority string) model.Importance {
	if strings.Contains(priority, highPriorityKeyword) {
		return model.ImportanceHigh
	}
	if strings.Contains(priority, lowPriorityKeyword) {
		return model.ImportanceLow
	}
	return model.ImportanceMedium
}

// MeetingImportance 根据会议类型文本分类重点程度
func MeetingImportance(meetingType string) model.Importance {
	if containsAny(meetingType, highMeetingKeywords) {
		return model.ImportanceHigh
	}
	if containsAny(meetingType, lowMeetingKeywords) {
		return model.ImportanceLow
	}
	return model.ImportanceMedium
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
