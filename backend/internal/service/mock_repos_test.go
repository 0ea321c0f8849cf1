package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"faculty-records/backend/internal/model"
	"faculty-records/backend/internal/repository"
	"faculty-records/backend/pkg/session"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: username 或 user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "test-user-" + user.Username
	}
	m.users[user.Username] = user
	m.users[user.UserID] = user
	if user.Email != "" {
		m.users["email:"+user.Email] = user
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id string, newHash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = newHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock LoginAttemptRepository ──

// mockAttemptRepo 内存尝试记录；countErr 非空时模拟计数查询故障
type mockAttemptRepo struct {
	mu       sync.Mutex
	attempts []model.LoginAttempt
	countErr error
}

func newMockAttemptRepo() *mockAttemptRepo {
	return &mockAttemptRepo{}
}

func (m *mockAttemptRepo) Insert(_ context.Context, attempt *model.LoginAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, *attempt)
	return nil
}

func (m *mockAttemptRepo) CountFailed(_ context.Context, username, ip string, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	var count int64
	for _, a := range m.attempts {
		if a.Username == username && a.IPAddress == ip && !a.Success && a.AttemptedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockAttemptRepo) DeleteOlderThan(_ context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.attempts[:0]
	for _, a := range m.attempts {
		if !a.AttemptedAt.Before(before) {
			kept = append(kept, a)
		}
	}
	m.attempts = kept
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments map[int]*model.Department
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{
		departments: map[int]*model.Department{
			1: {DepartmentID: 1, Name: "计算机学院", Code: "CS", IsActive: true},
			2: {DepartmentID: 2, Name: "数学学院", Code: "MATH", IsActive: true},
		},
	}
}

func (m *mockDeptRepo) GetByID(_ context.Context, id int) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		if d.IsActive {
			result = append(result, *d)
		}
	}
	return result, nil
}

// ── Mock FacultyRecordRepository ──

// mockFacultyRepo 内存档案存储；createErr 非空时 Create 返回该错误，
// existsErr 非空时唯一性预检查返回该错误
type mockFacultyRepo struct {
	records   map[string]*model.FacultyRecord
	seq       int
	createErr error
	existsErr error
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{records: make(map[string]*model.FacultyRecord)}
}

func (m *mockFacultyRepo) Create(_ context.Context, record *model.FacultyRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if record.RecordID == "" {
		m.seq++
		record.RecordID = fmt.Sprintf("rec-%d", m.seq)
	}
	m.records[record.RecordID] = record
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.FacultyRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) ListWithFilters(_ context.Context, filters *repository.FacultyListFilters, offset, limit int) ([]model.FacultyRecord, int64, error) {
	var all []model.FacultyRecord
	for _, r := range m.records {
		if filters != nil {
			if filters.DepartmentID > 0 && r.DepartmentID != filters.DepartmentID {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(r.EmployeeID), kw) &&
					!strings.Contains(strings.ToLower(r.FirstName), kw) &&
					!strings.Contains(strings.ToLower(r.LastName), kw) &&
					!strings.Contains(strings.ToLower(r.Email), kw) {
					continue
				}
			}
		}
		all = append(all, *r)
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockFacultyRepo) ListAll(_ context.Context) ([]model.FacultyRecord, error) {
	var all []model.FacultyRecord
	for _, r := range m.records {
		all = append(all, *r)
	}
	return all, nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockFacultyRepo) ExistsByEmail(_ context.Context, email string, excludeID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, r := range m.records {
		if r.Email == email && r.RecordID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFacultyRepo) ExistsByEmployeeID(_ context.Context, employeeID string, excludeID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.RecordID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ── 内存会话 Store ──

type memSessionStore struct {
	mu     sync.Mutex
	active map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{active: make(map[string]string)}
}

func (s *memSessionStore) SetActive(_ context.Context, userID, sessionID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[userID] = sessionID
	return nil
}

func (s *memSessionStore) GetActive(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sid, ok := s.active[userID]; ok {
		return sid, nil
	}
	return "", session.ErrNotFound
}

func (s *memSessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, userID)
	return nil
}
