package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/pkg/errors"
)

// In-memory repository fakes backing the application service tests.

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[string]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[string]*models.Tenant)}
}

func (r *fakeTenantRepo) Save(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) FindByID(_ context.Context, id string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, errors.ErrNotFound("tenant", id)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTenantRepo) FindAll(_ context.Context, limit, offset int) ([]*models.Tenant, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Tenant
	for _, t := range r.tenants {
		if t.DeletedAt == nil {
			cp := *t
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[t.ID]; !ok {
		return errors.ErrNotFound("tenant", t.ID)
	}
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*models.Report)}
}

func (r *fakeReportRepo) Save(_ context.Context, rep *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reports {
		if existing.TenantID == rep.TenantID && existing.Period == rep.Period {
			return errors.ErrConflict("report already exists for period")
		}
	}
	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

func (r *fakeReportRepo) FindByID(_ context.Context, id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, errors.ErrNotFound("report", id)
	}
	cp := *rep
	return &cp, nil
}

func (r *fakeReportRepo) FindByTenant(_ context.Context, tenantID string) ([]*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Report
	for _, rep := range r.reports {
		if rep.TenantID == tenantID {
			cp := *rep
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeReportRepo) FindByPeriod(_ context.Context, tenantID string, period models.Period) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		if rep.TenantID == tenantID && rep.Period == period {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReportRepo) Update(_ context.Context, rep *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[rep.ID]; !ok {
		return errors.ErrNotFound("report", rep.ID)
	}
	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []*models.SecurityMetricSnapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo { return &fakeSnapshotRepo{} }

func (r *fakeSnapshotRepo) Append(_ context.Context, s *models.SecurityMetricSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.snapshots = append(r.snapshots, &cp)
	return nil
}

func (r *fakeSnapshotRepo) Latest(_ context.Context, tenantID string) (*models.SecurityMetricSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.SecurityMetricSnapshot
	for _, s := range r.snapshots {
		if s.TenantID != tenantID {
			continue
		}
		if latest == nil || s.CollectedAt.After(latest.CollectedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeSnapshotRepo) Range(_ context.Context, tenantID string, from, to time.Time) ([]*models.SecurityMetricSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SecurityMetricSnapshot
	for _, s := range r.snapshots {
		if s.TenantID == tenantID && !s.CollectedAt.Before(from) && s.CollectedAt.Before(to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectedAt.Before(out[j].CollectedAt) })
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errors.ErrConflict("email already in use")
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.ErrNotFound("user", email)
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return errors.ErrNotFound("user", u.ID)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errors.ErrNotFound("user", id)
	}
	delete(r.users, id)
	return nil
}

type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[string]*models.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*models.Invite)}
}

func (r *fakeInviteRepo) Save(_ context.Context, i *models.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *i
	r.invites[i.ID] = &cp
	return nil
}

func (r *fakeInviteRepo) FindByToken(_ context.Context, token string) (*models.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.invites {
		if i.Token == token {
			cp := *i
			return &cp, nil
		}
	}
	return nil, errors.ErrNotFound("invite", "token")
}

func (r *fakeInviteRepo) FindAll(_ context.Context) ([]*models.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Invite
	for _, i := range r.invites {
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInviteRepo) Update(_ context.Context, i *models.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invites[i.ID]; !ok {
		return errors.ErrNotFound("invite", i.ID)
	}
	cp := *i
	r.invites[i.ID] = &cp
	return nil
}

func (r *fakeInviteRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invites[id]; !ok {
		return errors.ErrNotFound("invite", id)
	}
	delete(r.invites, id)
	return nil
}

type fakeIntegrationRepo struct {
	mu           sync.Mutex
	integrations map[string]*models.Integration
}

func newFakeIntegrationRepo() *fakeIntegrationRepo {
	return &fakeIntegrationRepo{integrations: make(map[string]*models.Integration)}
}

func (r *fakeIntegrationRepo) Save(_ context.Context, i *models.Integration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *i
	r.integrations[i.ID] = &cp
	return nil
}

func (r *fakeIntegrationRepo) FindByID(_ context.Context, id string) (*models.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.integrations[id]
	if !ok {
		return nil, errors.ErrNotFound("integration", id)
	}
	cp := *i
	return &cp, nil
}

func (r *fakeIntegrationRepo) FindByTenant(_ context.Context, tenantID string) ([]*models.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Integration
	for _, i := range r.integrations {
		if i.TenantID == tenantID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeIntegrationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.integrations[id]; !ok {
		return errors.ErrNotFound("integration", id)
	}
	delete(r.integrations, id)
	return nil
}

// capturing audit publisher
type fakeAudit struct {
	mu     sync.Mutex
	events []*models.AuditEvent
}

func (a *fakeAudit) LogEvent(_ context.Context, event *models.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *fakeAudit) Close() error { return nil }

func (a *fakeAudit) eventTypes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.EventType)
	}
	return out
}
