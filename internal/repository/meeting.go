package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/staffview/staffview/pkg/model"
)

// MeetingRepository 会议仓储
type MeetingRepository struct {
	db DB
}

// NewMeetingRepository 创建会议仓储
func NewMeetingRepository(db DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// ListAll 读取全部未删除会议
func (r *MeetingRepository) ListAll(ctx context.Context) ([]*model.Meeting, error) {
	query := `
		SELECT id, title, meeting_type, status, start_time, end_time,
			COALESCE(location, ''), COALESCE(meeting_link, ''), participants
		FROM meetings
		WHERE deleted_at IS NULL
		ORDER BY start_time
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询会议失败: %w", err)
	}
	defer rows.Close()

	var meetings []*model.Meeting
	for rows.Next() {
		m := &model.Meeting{}
		var endTime sql.NullTime
		var participantsJSON []byte

		err := rows.Scan(
			&m.ID, &m.Title, &m.MeetingType, &m.Status, &m.StartTime, &endTime,
			&m.Location, &m.MeetingLink, &participantsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描会议数据失败: %w", err)
		}

		if endTime.Valid {
			t := endTime.Time
			m.EndTime = &t
		}
		json.Unmarshal(participantsJSON, &m.Participants)

		meetings = append(meetings, m)
	}

	return meetings, rows.Err()
}
