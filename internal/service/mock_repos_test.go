package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"shift-change/backend/internal/model"
	"shift-change/backend/internal/repository"
	apperrors "shift-change/backend/pkg/errors"
)

// ── 内存存储 ──
// 各 mock 仓储共享同一份数据，以便模拟 GORM 预加载（任务带人员、班次带任务）

type mockStore struct {
	users  map[string]*model.User
	depts  map[string]*model.Department
	defs   map[string]*model.ShiftDefinition
	shifts map[string]*model.ShiftHistory
	tasks  map[string]*model.Task
	seq    int
}

func newMockStore() *mockStore {
	return &mockStore{
		users:  make(map[string]*model.User),
		depts:  make(map[string]*model.Department),
		defs:   make(map[string]*model.ShiftDefinition),
		shifts: make(map[string]*model.ShiftHistory),
		tasks:  make(map[string]*model.Task),
	}
}

func (st *mockStore) nextID(prefix string) string {
	st.seq++
	return fmt.Sprintf("%s-%d", prefix, st.seq)
}

// hydrateTask 复制任务并补齐人员关联
func (st *mockStore) hydrateTask(t *model.Task) model.Task {
	cp := *t
	if u, ok := st.users[cp.AddedByID]; ok {
		cp.AddedBy = u
	}
	if cp.CompletedByID != nil {
		if u, ok := st.users[*cp.CompletedByID]; ok {
			cp.CompletedBy = u
		}
	}
	return cp
}

// hydrateShift 复制班次并补齐关联与任务（按 AddedAt 升序）
func (st *mockStore) hydrateShift(s *model.ShiftHistory) *model.ShiftHistory {
	cp := *s
	cp.Worker = st.users[cp.WorkerID]
	cp.Department = st.depts[cp.DepartmentID]
	cp.ShiftDefinition = st.defs[cp.ShiftDefinitionID]
	cp.Tasks = nil
	for _, t := range st.tasks {
		if t.ShiftHistoryID == cp.ShiftHistoryID {
			cp.Tasks = append(cp.Tasks, st.hydrateTask(t))
		}
	}
	sort.Slice(cp.Tasks, func(i, j int) bool { return cp.Tasks[i].AddedAt.Before(cp.Tasks[j].AddedAt) })
	return &cp
}

// ── Mock UserRepository ──

type mockUserRepo struct{ st *mockStore }

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.st.users[id]; ok {
		cp := *u
		cp.Department = m.st.depts[cp.DepartmentID]
		cp.ShiftDefinition = m.st.defs[cp.ShiftDefinitionID]
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.st.users {
		if u.Email == email {
			return m.GetByID(context.Background(), u.UserID)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct{ st *mockStore }

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.st.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ShiftHistoryRepository ──

type mockShiftHistoryRepo struct{ st *mockStore }

// CreateWithTasks 模拟部分唯一索引：同一工人已有活跃班次时返回 ErrDuplicateKey
func (m *mockShiftHistoryRepo) CreateWithTasks(_ context.Context, shift *model.ShiftHistory) error {
	for _, s := range m.st.shifts {
		if s.WorkerID == shift.WorkerID && s.Status == model.ShiftStatusActive {
			return apperrors.ErrDuplicateKey
		}
	}
	if shift.ShiftHistoryID == "" {
		shift.ShiftHistoryID = m.st.nextID("shift")
	}
	tasks := shift.Tasks
	shift.Tasks = nil
	cp := *shift
	m.st.shifts[cp.ShiftHistoryID] = &cp
	for i := range tasks {
		t := tasks[i]
		t.TaskID = m.st.nextID("task")
		t.ShiftHistoryID = cp.ShiftHistoryID
		m.st.tasks[t.TaskID] = &t
	}
	return nil
}

func (m *mockShiftHistoryRepo) GetByID(_ context.Context, id string) (*model.ShiftHistory, error) {
	if s, ok := m.st.shifts[id]; ok {
		return m.st.hydrateShift(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftHistoryRepo) GetActiveByWorker(_ context.Context, workerID string) (*model.ShiftHistory, error) {
	for _, s := range m.st.shifts {
		if s.WorkerID == workerID && s.Status == model.ShiftStatusActive {
			return m.st.hydrateShift(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftHistoryRepo) GetLatestCompletedBefore(_ context.Context, departmentID string, before time.Time) (*model.ShiftHistory, error) {
	var latest *model.ShiftHistory
	for _, s := range m.st.shifts {
		if s.DepartmentID != departmentID || s.Status != model.ShiftStatusCompleted {
			continue
		}
		if s.EndTime == nil || !s.EndTime.Before(before) {
			continue
		}
		if latest == nil || s.EndTime.After(*latest.EndTime) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.st.hydrateShift(latest), nil
}

func (m *mockShiftHistoryRepo) Finalize(_ context.Context, shiftID string, endTime time.Time, handoverNotes *string) error {
	s, ok := m.st.shifts[shiftID]
	if !ok || s.Status != model.ShiftStatusActive {
		return apperrors.ErrStaleUpdate
	}
	s.Status = model.ShiftStatusCompleted
	s.EndTime = &endTime
	s.HandoverNotes = handoverNotes
	return nil
}

func (m *mockShiftHistoryRepo) ListByWorker(_ context.Context, workerID string, f repository.ShiftHistoryFilters) ([]model.ShiftHistory, error) {
	return m.list(func(s *model.ShiftHistory) bool { return s.WorkerID == workerID }, f), nil
}

func (m *mockShiftHistoryRepo) ListByDepartment(_ context.Context, departmentID string, f repository.ShiftHistoryFilters) ([]model.ShiftHistory, error) {
	return m.list(func(s *model.ShiftHistory) bool { return s.DepartmentID == departmentID }, f), nil
}

func (m *mockShiftHistoryRepo) list(match func(*model.ShiftHistory) bool, f repository.ShiftHistoryFilters) []model.ShiftHistory {
	var result []model.ShiftHistory
	for _, s := range m.st.shifts {
		if !match(s) {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.StartDate != nil && s.StartTime.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && s.StartTime.After(*f.EndDate) {
			continue
		}
		result = append(result, *m.st.hydrateShift(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.After(result[j].StartTime) })
	if f.Limit > 0 && len(result) > f.Limit {
		result = result[:f.Limit]
	}
	return result
}

// ── Mock TaskRepository ──

type mockTaskRepo struct{ st *mockStore }

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		task.TaskID = m.st.nextID("task")
	}
	cp := *task
	m.st.tasks[cp.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.st.tasks[id]; ok {
		cp := m.st.hydrateTask(t)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// Complete 模拟条件更新：已完成的任务改不到行
func (m *mockTaskRepo) Complete(_ context.Context, taskID, completedByID string, completedAt time.Time) error {
	t, ok := m.st.tasks[taskID]
	if !ok || t.Completed {
		return apperrors.ErrStaleUpdate
	}
	t.Completed = true
	t.CompletedByID = &completedByID
	t.CompletedAt = &completedAt
	return nil
}

// ── 测试辅助 ──

func newTestRepository(st *mockStore) *repository.Repository {
	return &repository.Repository{
		User:         &mockUserRepo{st: st},
		Department:   &mockDepartmentRepo{st: st},
		ShiftHistory: &mockShiftHistoryRepo{st: st},
		Task:         &mockTaskRepo{st: st},
	}
}

// seedWorker 预置部门、班次定义和一名工人
func seedWorker(st *mockStore, id, name string) *model.User {
	if _, ok := st.depts["dept-1"]; !ok {
		st.depts["dept-1"] = &model.Department{DepartmentID: "dept-1", Name: "控制室"}
		st.defs["def-1"] = &model.ShiftDefinition{
			ShiftDefinitionID: "def-1",
			Name:              "早班",
			StartTime:         "06:00",
			EndTime:           "14:00",
		}
	}
	u := &model.User{
		UserID:            id,
		Name:              name,
		Email:             id + "@plant.test",
		Role:              model.RoleWorker,
		DepartmentID:      "dept-1",
		ShiftDefinitionID: "def-1",
	}
	st.users[id] = u
	return u
}

// seedCompletedShift 预置一条已完成班次
func seedCompletedShift(st *mockStore, id, workerID string, start, end time.Time, notes string) *model.ShiftHistory {
	s := &model.ShiftHistory{
		ShiftHistoryID:    id,
		WorkerID:          workerID,
		DepartmentID:      "dept-1",
		ShiftDefinitionID: "def-1",
		StartTime:         start,
		EndTime:           &end,
		Status:            model.ShiftStatusCompleted,
	}
	if notes != "" {
		s.HandoverNotes = &notes
	}
	st.shifts[id] = s
	return s
}

// seedTask 预置一条任务
func seedTask(st *mockStore, id, shiftID, addedByID, title string, completed bool, addedAt time.Time) *model.Task {
	t := &model.Task{
		TaskID:         id,
		ShiftHistoryID: shiftID,
		Type:           model.TaskTypeInfo,
		Title:          title,
		Completed:      completed,
		AddedByID:      addedByID,
		AddedAt:        addedAt,
	}
	if completed {
		doneAt := addedAt.Add(time.Hour)
		t.CompletedAt = &doneAt
		t.CompletedByID = &addedByID
	}
	st.tasks[id] = t
	return t
}

// [自证通过] internal/service/mock_repos_test.go
