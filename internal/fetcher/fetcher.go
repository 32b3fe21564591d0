// Package fetcher 负责从外部存储读取原始记录
package fetcher

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/staffview/staffview/pkg/errors"
	"github.com/staffview/staffview/pkg/logger"
	"github.com/staffview/staffview/pkg/model"
)

// EmployeeSource 员工数据源
type EmployeeSource interface {
	ListAll(ctx context.Context) ([]*model.Employee, error)
}

// MentorSource 导师数据源
type MentorSource interface {
	ListAll(ctx context.Context) ([]*model.Mentor, error)
}

// MeetingSource 会议数据源
type MeetingSource interface {
	ListAll(ctx context.Context) ([]*model.Meeting, error)
}

// TaskSource 任务数据源
type TaskSource interface {
	ListAll(ctx context.Context) ([]*model.Task, error)
}

// AvatarWriter 头像回填写入口（尽力而为）
type AvatarWriter interface {
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}

// Config 拉取配置
type Config struct {
	FetchTimeout  time.Duration
	AvatarBaseURL string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		FetchTimeout:  10 * time.Second,
		AvatarBaseURL: "https://api.dicebear.com/7.x/initials/svg",
	}
}

// Fetcher 原始记录拉取器
//
// 员工和导师是必需数据源，读取失败使本轮刷新失败；
// 会议和任务各自隔离失败，出错时降级为空列表。
type Fetcher struct {
	employees EmployeeSource
	mentors   MentorSource
	meetings  MeetingSource
	tasks     TaskSource
	avatars   AvatarWriter
	cfg       Config
	log       *logger.EngineLogger
}

// New 创建拉取器
func New(employees EmployeeSource, mentors MentorSource, meetings MeetingSource, tasks TaskSource, avatars AvatarWriter, cfg Config) *Fetcher {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultConfig().FetchTimeout
	}
	if cfg.AvatarBaseURL == "" {
		cfg.AvatarBaseURL = DefaultConfig().AvatarBaseURL
	}
	return &Fetcher{
		employees: employees,
		mentors:   mentors,
		meetings:  meetings,
		tasks:     tasks,
		avatars:   avatars,
		cfg:       cfg,
		log:       logger.NewEngineLogger(),
	}
}

// Fetch 读取一轮完整的原始记录快照
func (f *Fetcher) Fetch(ctx context.Context) (*model.RawRecords, error) {
	employees, err := f.fetchEmployees(ctx)
	if err != nil {
		return nil, errors.SourceFetchFailed("employees", err)
	}

	mentors, err := f.fetchMentors(ctx)
	if err != nil {
		return nil, errors.SourceFetchFailed("mentors", err)
	}

	// 会议与任务互不依赖，可并发读取，失败各自降级
	var wg sync.WaitGroup
	var meetings []*model.Meeting
	var tasks []*model.Task

	wg.Add(2)
	go func() {
		defer wg.Done()
		m, err := f.fetchMeetings(ctx)
		if err != nil {
			f.log.SourceDegraded("meetings", err)
			return
		}
		meetings = m
	}()
	go func() {
		defer wg.Done()
		t, err := f.fetchTasks(ctx)
		if err != nil {
			f.log.SourceDegraded("tasks", err)
			return
		}
		tasks = t
	}()
	wg.Wait()

	f.backfillAvatars(ctx, employees)

	return &model.RawRecords{
		Employees: employees,
		Mentors:   mentors,
		Meetings:  meetings,
		Tasks:     tasks,
	}, nil
}

func (f *Fetcher) fetchEmployees(ctx context.Context) ([]*model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()
	return f.employees.ListAll(ctx)
}

func (f *Fetcher) fetchMentors(ctx context.Context) ([]*model.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()
	return f.mentors.ListAll(ctx)
}

func (f *Fetcher) fetchMeetings(ctx context.Context) ([]*model.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()
	return f.meetings.ListAll(ctx)
}

func (f *Fetcher) fetchTasks(ctx context.Context) ([]*model.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()
	return f.tasks.ListAll(ctx)
}

// backfillAvatars 为缺少头像的员工生成确定性头像并写回存储
func (f *Fetcher) backfillAvatars(ctx context.Context, employees []*model.Employee) {
	if f.avatars == nil {
		return
	}

	for _, emp := range employees {
		if emp.AvatarURL != "" {
			continue
		}

		avatarURL := f.AvatarURL(emp)
		emp.AvatarURL = avatarURL

		if err := f.avatars.UpdateAvatar(ctx, emp.ID, avatarURL); err != nil {
			logger.Warn().
				Str("employee_id", emp.ID).
				Err(err).
				Msg("头像回填写入失败")
		}
	}
}

// AvatarURL 根据员工姓名生成确定性头像地址，姓名为空时使用合成ID
func (f *Fetcher) AvatarURL(emp *model.Employee) string {
	seed := emp.Name
	if seed == "" {
		sum := sha1.Sum([]byte(emp.ID))
		seed = fmt.Sprintf("staff-%s", hex.EncodeToString(sum[:])[:8])
	}
	return fmt.Sprintf("%s?seed=%s", f.cfg.AvatarBaseURL, url.QueryEscape(seed))
}
