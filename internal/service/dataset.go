// Package service 组装排班推导流水线并维护数据集缓存
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/staffview/staffview/internal/metrics"
	"github.com/staffview/staffview/pkg/derive"
	"github.com/staffview/staffview/pkg/logger"
	"github.com/staffview/staffview/pkg/model"
	"github.com/staffview/staffview/pkg/relation"
	"github.com/staffview/staffview/pkg/stats"
	"github.com/staffview/staffview/pkg/validator"
)

// DefaultTTL 缓存默认有效期
const DefaultTTL = 60 * time.Second

// RecordFetcher 原始记录拉取接口
type RecordFetcher interface {
	Fetch(ctx context.Context) (*model.RawRecords, error)
}

// cachedDataset 一次推导的缓存条目
type cachedDataset struct {
	data        *model.Dataset
	generatedAt time.Time
}

// DatasetService 数据集服务。
//
// 缓存是进程内的最后写入者获胜备忘录：刷新期间的并发调用
// 可能触发重复推导，代价可接受，不做单飞去重。
type DatasetService struct {
	fetcher    RecordFetcher
	detector   *validator.ConflictDetector
	aggregator *stats.AttendanceAggregator
	ttl        time.Duration
	cached     atomic.Pointer[cachedDataset]
	now        func() time.Time
	log        *logger.EngineLogger
}

// NewDatasetService 创建数据集服务
func NewDatasetService(fetcher RecordFetcher, ttl time.Duration) *DatasetService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DatasetService{
		fetcher:    fetcher,
		detector:   validator.NewConflictDetector(nil),
		aggregator: stats.NewAttendanceAggregator(),
		ttl:        ttl,
		now:        time.Now,
		log:        logger.NewEngineLogger(),
	}
}

// LoadDataset 返回完整的派生数据集。
// 缓存缺失、过期或要求强制刷新时重新推导；
// 推导失败时安装并返回静态兜底数据集，绝不向调用方抛错。
func (s *DatasetService) LoadDataset(ctx context.Context, forceRefresh bool) *model.Dataset {
	if !forceRefresh {
		if c := s.cached.Load(); c != nil && s.now().Sub(c.generatedAt) < s.ttl {
			metrics.RecordCacheLookup(true)
			return c.data
		}
	}
	metrics.RecordCacheLookup(false)

	s.log.StartRefresh(forceRefresh)
	started := s.now()

	data, err := s.rebuild(ctx)
	fallback := err != nil
	if fallback {
		logger.Error().Err(err).Msg("数据集推导失败，启用静态兜底数据")
		data = FallbackDataset(s.now())
	}

	s.cached.Store(&cachedDataset{data: data, generatedAt: s.now()})

	duration := s.now().Sub(started)
	metrics.RecordDatasetRefresh(fallback, duration)
	metrics.SetDatasetGauges(len(data.Profiles), len(data.Conflicts))
	s.log.RefreshComplete(duration, len(data.Profiles), len(data.Conflicts))

	return data
}

// LoadProfileByID 返回单个员工视图及其相关冲突，复用同一份缓存
func (s *DatasetService) LoadProfileByID(ctx context.Context, id string, forceRefresh bool) (*model.StaffProfile, []*model.ShiftConflict) {
	data := s.LoadDataset(ctx, forceRefresh)

	var profile *model.StaffProfile
	for _, p := range data.Profiles {
		if p.ID == id {
			profile = p
			break
		}
	}
	if profile == nil {
		return nil, nil
	}

	var conflicts []*model.ShiftConflict
	for _, c := range data.Conflicts {
		if c.Staff == profile.Name {
			conflicts = append(conflicts, c)
		}
	}

	return profile, conflicts
}

// rebuild 执行一轮完整的推导流水线
func (s *DatasetService) rebuild(ctx context.Context) (*model.Dataset, error) {
	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	idx := relation.Build(records)

	profiles := make([]*model.StaffProfile, 0, len(records.Employees))
	for _, emp := range records.Employees {
		profiles = append(profiles, derive.BuildProfile(emp, idx.MeetingsFor(emp.ID), idx.TasksFor(emp.ID), now))
	}

	conflicts := s.detector.DetectAll(profiles, idx.MeetingsByEmployee, idx.TasksByEmployee, now)
	attendance := s.aggregator.Aggregate(records.Meetings, records.Tasks, now)

	return &model.Dataset{
		Profiles:   profiles,
		Conflicts:  conflicts,
		Attendance: attendance,
		FetchedAt:  now,
	}, nil
}
