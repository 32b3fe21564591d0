package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/staffview/staffview/pkg/model"
)

// TaskRepository 任务仓储
type TaskRepository struct {
	db DB
}

// NewTaskRepository 创建任务仓储
func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListAll 读取全部未删除任务
func (r *TaskRepository) ListAll(ctx context.Context) ([]*model.Task, error) {
	query := `
		SELECT id, title, status, COALESCE(priority, ''), start_date, due_date, assigned_to
		FROM tasks
		WHERE deleted_at IS NULL
		ORDER BY due_date NULLS LAST
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询任务失败: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		t := &model.Task{}
		var startDate, dueDate sql.NullTime
		var assignedJSON []byte

		err := rows.Scan(
			&t.ID, &t.Title, &t.Status, &t.Priority, &startDate, &dueDate, &assignedJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描任务数据失败: %w", err)
		}

		if startDate.Valid {
			d := startDate.Time
			t.StartDate = &d
		}
		if dueDate.Valid {
			d := dueDate.Time
			t.DueDate = &d
		}
		json.Unmarshal(assignedJSON, &t.AssignedTo)

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}
