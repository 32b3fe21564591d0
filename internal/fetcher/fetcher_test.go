package fetcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/staffview/staffview/pkg/model"
)

type fakeEmployees struct {
	list []*model.Employee
	err  error
}

func (f *fakeEmployees) ListAll(ctx context.Context) ([]*model.Employee, error) {
	return f.list, f.err
}

type fakeMentors struct {
	list []*model.Mentor
	err  error
}

func (f *fakeMentors) ListAll(ctx context.Context) ([]*model.Mentor, error) {
	return f.list, f.err
}

type fakeMeetings struct {
	list []*model.Meeting
	err  error
}

func (f *fakeMeetings) ListAll(ctx context.Context) ([]*model.Meeting, error) {
	return f.list, f.err
}

type fakeTasks struct {
	list []*model.Task
	err  error
}

func (f *fakeTasks) ListAll(ctx context.Context) ([]*model.Task, error) {
	return f.list, f.err
}

type fakeAvatarWriter struct {
	updates map[string]string
	err     error
}

func (f *fakeAvatarWriter) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	if f.updates == nil {
		f.updates = make(map[string]string)
	}
	f.updates[id] = avatarURL
	return f.err
}

func newTestFetcher(e *fakeEmployees, mt *fakeMentors, m *fakeMeetings, t *fakeTasks, w *fakeAvatarWriter) *Fetcher {
	return New(e, mt, m, t, w, DefaultConfig())
}

func TestFetch_AllSources(t *testing.T) {
	f := newTestFetcher(
		&fakeEmployees{list: []*model.Employee{{ID: "e1", Name: "张伟", AvatarURL: "https://cdn.example.com/e1.png"}}},
		&fakeMentors{list: []*model.Mentor{{ID: "mt1", EmployeeID: "e1"}}},
		&fakeMeetings{list: []*model.Meeting{{ID: "m1"}}},
		&fakeTasks{list: []*model.Task{{ID: "t1"}}},
		&fakeAvatarWriter{},
	)

	records, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records.Employees) != 1 || len(records.Mentors) != 1 || len(records.Meetings) != 1 || len(records.Tasks) != 1 {
		t.Errorf("Unexpected record counts: %+v", records)
	}
}

func TestFetch_EmployeeErrorIsFatal(t *testing.T) {
	f := newTestFetcher(
		&fakeEmployees{err: errors.New("connection refused")},
		&fakeMentors{},
		&fakeMeetings{},
		&fakeTasks{},
		nil,
	)

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("Employee source failure should fail the fetch")
	}
}

func TestFetch_MentorErrorIsFatal(t *testing.T) {
	f := newTestFetcher(
		&fakeEmployees{list: []*model.Employee{{ID: "e1"}}},
		&fakeMentors{err: errors.New("timeout")},
		&fakeMeetings{},
		&fakeTasks{},
		nil,
	)

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("Mentor source failure should fail the fetch")
	}
}

func TestFetch_MeetingAndTaskErrorsDegrade(t *testing.T) {
	f := newTestFetcher(
		&fakeEmployees{list: []*model.Employee{{ID: "e1", Name: "张伟", AvatarURL: "x"}}},
		&fakeMentors{},
		&fakeMeetings{err: errors.New("table missing")},
		&fakeTasks{err: errors.New("table missing")},
		nil,
	)

	records, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Degradable sources should not fail the fetch: %v", err)
	}
	if len(records.Meetings) != 0 || len(records.Tasks) != 0 {
		t.Errorf("Failed sources should degrade to empty, got %+v", records)
	}
	if len(records.Employees) != 1 {
		t.Errorf("Employees should survive degradation")
	}
}

func TestFetch_AvatarBackfill(t *testing.T) {
	writer := &fakeAvatarWriter{}
	f := newTestFetcher(
		&fakeEmployees{list: []*model.Employee{
			{ID: "e1", Name: "张伟"},
			{ID: "e2", Name: "李娜", AvatarURL: "https://cdn.example.com/e2.png"},
		}},
		&fakeMentors{},
		&fakeMeetings{},
		&fakeTasks{},
		writer,
	)

	records, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if records.Employees[0].AvatarURL == "" {
		t.Error("Missing avatar should be backfilled in memory")
	}
	if _, ok := writer.updates["e1"]; !ok {
		t.Error("Backfilled avatar should be written back")
	}
	if _, ok := writer.updates["e2"]; ok {
		t.Error("Existing avatar should not be overwritten")
	}
}

func TestFetch_AvatarWriteErrorTolerated(t *testing.T) {
	writer := &fakeAvatarWriter{err: errors.New("read-only replica")}
	f := newTestFetcher(
		&fakeEmployees{list: []*model.Employee{{ID: "e1", Name: "张伟"}}},
		&fakeMentors{},
		&fakeMeetings{},
		&fakeTasks{},
		writer,
	)

	records, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Avatar write failure should be tolerated: %v", err)
	}
	if records.Employees[0].AvatarURL == "" {
		t.Error("In-memory avatar should still be set on write failure")
	}
}

func TestAvatarURL(t *testing.T) {
	f := newTestFetcher(&fakeEmployees{}, &fakeMentors{}, &fakeMeetings{}, &fakeTasks{}, nil)

	named := f.AvatarURL(&model.Employee{ID: "e1", Name: "张伟"})
	if !strings.Contains(named, "seed=") {
		t.Errorf("Avatar URL should carry seed parameter: %s", named)
	}
	if named != f.AvatarURL(&model.Employee{ID: "e9", Name: "张伟"}) {
		t.Errorf("Same name should yield the same avatar URL")
	}

	// 姓名为空时使用合成ID种子
	anon := f.AvatarURL(&model.Employee{ID: "e1"})
	if !strings.Contains(anon, "seed=staff-") {
		t.Errorf("Blank name should use synthetic seed: %s", anon)
	}
	if anon != f.AvatarURL(&model.Employee{ID: "e1"}) {
		t.Errorf("Synthetic seed should be deterministic")
	}
}
