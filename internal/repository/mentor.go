package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/staffview/staffview/pkg/model"
)

// MentorRepository 导师仓储
type MentorRepository struct {
	db DB
}

// NewMentorRepository 创建导师仓储
func NewMentorRepository(db DB) *MentorRepository {
	return &MentorRepository{db: db}
}

// ListAll 读取全部未删除导师
func (r *MentorRepository) ListAll(ctx context.Context) ([]*model.Mentor, error) {
	query := `
		SELECT id, COALESCE(employee_id, ''), name, service_scope, specializations,
			bio, location, avatar_url
		FROM mentors
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询导师失败: %w", err)
	}
	defer rows.Close()

	var mentors []*model.Mentor
	for rows.Next() {
		m := &model.Mentor{}
		var scopeJSON, specJSON []byte

		err := rows.Scan(
			&m.ID, &m.EmployeeID, &m.Name, &scopeJSON, &specJSON,
			&m.Bio, &m.Location, &m.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描导师数据失败: %w", err)
		}

		json.Unmarshal(scopeJSON, &m.ServiceScope)
		json.Unmarshal(specJSON, &m.Specializations)

		mentors = append(mentors, m)
	}

	return mentors, rows.Err()
}
