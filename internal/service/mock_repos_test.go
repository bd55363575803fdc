package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
)

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.CompanyID == "" {
		company.CompanyID = fmt.Sprintf("company-%d", len(m.companies)+1)
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now()
	}
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByEmail(_ context.Context, email string) (*model.Company, error) {
	for _, c := range m.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) List(_ context.Context, keyword string, offset, limit int) ([]model.Company, int64, error) {
	var result []model.Company
	for _, c := range m.companies {
		if keyword != "" && !strings.Contains(c.Name, keyword) && !strings.Contains(c.Email, keyword) {
			continue
		}
		result = append(result, *c)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.CompanyID != "" && u.CompanyID != filters.CompanyID {
				continue
			}
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Keyword != "" && !strings.Contains(u.Name, filters.Keyword) && !strings.Contains(u.Email, filters.Keyword) {
				continue
			}
		}
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock NotificationReadRepository ──

type mockNotificationReadRepo struct {
	reads map[string]time.Time // "notificationID:userID" → readAt
}

func newMockNotificationReadRepo() *mockNotificationReadRepo {
	return &mockNotificationReadRepo{reads: make(map[string]time.Time)}
}

func readKey(notificationID, userID string) string {
	return notificationID + ":" + userID
}

func (m *mockNotificationReadRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	key := readKey(notificationID, userID)
	if _, ok := m.reads[key]; !ok {
		m.reads[key] = time.Now()
	}
	return nil
}

func (m *mockNotificationReadRepo) MarkReadBatch(_ context.Context, notificationIDs []string, userID string) error {
	for _, id := range notificationIDs {
		key := readKey(id, userID)
		if _, ok := m.reads[key]; !ok {
			m.reads[key] = time.Now()
		}
	}
	return nil
}

func (m *mockNotificationReadRepo) IsRead(_ context.Context, notificationID, userID string) (bool, error) {
	_, ok := m.reads[readKey(notificationID, userID)]
	return ok, nil
}

func (m *mockNotificationReadRepo) ReadSetByUser(_ context.Context, userID string) (map[string]time.Time, error) {
	set := make(map[string]time.Time)
	for key, at := range m.reads {
		idx := strings.LastIndex(key, ":")
		if key[idx+1:] == userID {
			set[key[:idx]] = at
		}
	}
	return set, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	reads         *mockNotificationReadRepo
}

func newMockNotificationRepo(reads *mockNotificationReadRepo) *mockNotificationRepo {
	return &mockNotificationRepo{
		notifications: make(map[string]*model.Notification),
		reads:         reads,
	}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) Deactivate(_ context.Context, id string) error {
	n, ok := m.notifications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.IsActive = false
	n.UpdatedAt = time.Now()
	return nil
}

func (m *mockNotificationRepo) ListLive(_ context.Context) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.IsActive {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockNotificationRepo) ListAll(_ context.Context, filters *repository.NotificationListFilters, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if filters != nil {
			if filters.Search != "" && !strings.Contains(n.Title, filters.Search) && !strings.Contains(n.Message, filters.Search) {
				continue
			}
			if filters.Type != "" && n.Type != filters.Type {
				continue
			}
			if filters.Priority != "" && n.Priority != filters.Priority {
				continue
			}
			if filters.Active != nil && n.IsActive != *filters.Active {
				continue
			}
		}
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockNotificationRepo) Overview(_ context.Context, now time.Time) (*repository.NotificationOverviewRow, error) {
	row := &repository.NotificationOverviewRow{}
	for _, n := range m.notifications {
		row.Total++
		if n.IsActive {
			row.Active++
		}
		if n.Priority == model.PriorityUrgent {
			row.Urgent++
		}
		if n.ExpiresAt != nil && n.ExpiresAt.Before(now) {
			row.Expired++
		}
		if n.ScheduleFor != nil && n.ScheduleFor.After(now) {
			row.Scheduled++
		}
	}
	return row, nil
}

func (m *mockNotificationRepo) TypeStats(_ context.Context) ([]repository.NotificationTypeStatRow, error) {
	// 与 SQL 口径一致：LEFT JOIN 后 COUNT(*)，每条回执产生一行
	sent := make(map[string]int64)
	read := make(map[string]int64)
	for _, n := range m.notifications {
		if !n.IsActive {
			continue
		}
		var joined int64
		for key := range m.reads.reads {
			if strings.HasPrefix(key, n.NotificationID+":") {
				joined++
			}
		}
		read[n.Type] += joined
		if joined == 0 {
			joined = 1
		}
		sent[n.Type] += joined
	}
	var rows []repository.NotificationTypeStatRow
	for typ, s := range sent {
		r := read[typ]
		rows = append(rows, repository.NotificationTypeStatRow{
			Type:           typ,
			Sent:           s,
			ReadCount:      r,
			ReadPercentage: float64(r) * 100 / float64(s),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Sent > rows[j].Sent })
	return rows, nil
}
