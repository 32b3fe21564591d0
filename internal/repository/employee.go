package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/staffview/staffview/pkg/model"
)

// EmployeeRepository 员工仓储
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository 创建员工仓储
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// ListAll 读取全部未删除员工
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]*model.Employee, error) {
	query := `
		SELECT id, name, position, department, email, location,
			is_active, is_partner, skills, avatar_url
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}
	defer rows.Close()

	var employees []*model.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// UpdateAvatar 回填员工头像地址（尽力而为的写入）
func (r *EmployeeRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	query := `UPDATE employees SET avatar_url = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, id, avatarURL, time.Now())
	if err != nil {
		return fmt.Errorf("回填员工头像失败: %w", err)
	}
	return nil
}

// scanEmployee 扫描单行员工数据
func scanEmployee(row Scanner) (*model.Employee, error) {
	emp := &model.Employee{}
	var skillsJSON []byte

	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Position, &emp.Department, &emp.Email, &emp.Location,
		&emp.IsActive, &emp.IsPartner, &skillsJSON, &emp.AvatarURL,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描员工数据失败: %w", err)
	}

	json.Unmarshal(skillsJSON, &emp.Skills)

	return emp, nil
}
