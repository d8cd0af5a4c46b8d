package service

import (
	"context"
	"fmt"
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by id
	nextID  int
	listErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.nextID++
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	r.users[copy.ID] = copy
	return cloneUser(copy)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Country != nil {
		u.Country = *update.Country
	}
	if update.City != nil {
		u.City = *update.City
	}
	if update.Timezone != nil {
		u.Timezone = *update.Timezone
	}
	if update.SubscriptionTier != nil {
		u.SubscriptionTier = *update.SubscriptionTier
	}
	if update.SubscriptionStatus != nil {
		u.SubscriptionStatus = *update.SubscriptionStatus
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	counts := make(map[domain.Role]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (r *stubUserRepo) ListPros(_ context.Context, _, _ int) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RolePro {
			out = append(out, cloneUser(u))
		}
	}
	return out, int64(len(out)), nil
}

// --- project repository stub ---

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int

	countByStatus map[domain.ProjectStatus]int64
	openClients   []string
	openCount     int64
	createdCounts map[time.Time]int64 // keyed by window start
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{
		projects:      make(map[string]*domain.Project),
		countByStatus: make(map[domain.ProjectStatus]int64),
		createdCounts: make(map[time.Time]int64),
	}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProjectRepo) add(p *domain.Project) *domain.Project {
	r.nextID++
	copy := cloneProject(p)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("proj_%d", r.nextID)
	}
	r.projects[copy.ID] = copy
	return cloneProject(copy)
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return r.add(p), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if filter.ProID != "" && p.ProID != filter.ProID {
			continue
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, cloneProject(p))
	}
	return out, int64(len(out)), nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, update ports.ProjectUpdate) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Budget != nil {
		p.Budget = *update.Budget
	}
	if update.StartDate != nil {
		p.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		p.EndDate = *update.EndDate
	}
	if update.Milestones != nil {
		p.Milestones = update.Milestones
	}
	if update.Deliverables != nil {
		p.Deliverables = update.Deliverables
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) CountOpen(_ context.Context, _ string) (int64, error) {
	return r.openCount, nil
}

func (r *stubProjectRepo) CountOpenCreatedBetween(_ context.Context, _ string, from, _ time.Time) (int64, error) {
	return r.createdCounts[from], nil
}

func (r *stubProjectRepo) OpenClientIDs(_ context.Context, _ string) ([]string, error) {
	return r.openClients, nil
}

func (r *stubProjectRepo) CountByStatus(_ context.Context, _ string) (map[domain.ProjectStatus]int64, error) {
	return r.countByStatus, nil
}

// --- invoice repository stub ---

type stubInvoiceRepo struct {
	invoices map[string]*domain.Invoice // keyed by number
	seq      int64

	paidSums        map[time.Time]float64  // keyed by window start
	invoicedClients map[time.Time][]string // keyed by window start
	monthlyRevenue  []ports.MonthlyRevenuePoint
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{
		invoices:        make(map[string]*domain.Invoice),
		paidSums:        make(map[time.Time]float64),
		invoicedClients: make(map[time.Time][]string),
	}
}

func cloneInvoice(inv *domain.Invoice) *domain.Invoice {
	if inv == nil {
		return nil
	}
	clone := *inv
	return &clone
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	copy := cloneInvoice(inv)
	if copy.ID == "" {
		copy.ID = copy.Number
	}
	r.invoices[copy.Number] = copy
	return cloneInvoice(copy), nil
}

func (r *stubInvoiceRepo) FindByNumber(_ context.Context, number string) (*domain.Invoice, error) {
	if inv, ok := r.invoices[number]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *stubInvoiceRepo) List(_ context.Context, filter ports.ListInvoicesFilter) ([]*domain.Invoice, int64, error) {
	var out []*domain.Invoice
	for _, inv := range r.invoices {
		if filter.ProID != "" && inv.ProID != filter.ProID {
			continue
		}
		if filter.ClientID != "" && inv.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) NextSequence(_ context.Context) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubInvoiceRepo) SumPaidBetween(_ context.Context, _ string, from, _ time.Time) (float64, error) {
	return r.paidSums[from], nil
}

func (r *stubInvoiceRepo) ClientIDsInvoicedBetween(_ context.Context, _ string, from, _ time.Time) ([]string, error) {
	return r.invoicedClients[from], nil
}

func (r *stubInvoiceRepo) MonthlyRevenue(_ context.Context, _ string, _ int, _ time.Time) ([]ports.MonthlyRevenuePoint, error) {
	return r.monthlyRevenue, nil
}

// --- payment repository stub ---

type statusUpdate struct {
	number string
	status domain.InvoiceStatus
	ts     time.Time
	source string
}

type stubPaymentRepo struct {
	invoices  *stubInvoiceRepo
	updates   []statusUpdate
	events    []*domain.PaymentEvent
	updateErr error
	insertErr error
}

func newStubPaymentRepo(invoices *stubInvoiceRepo) *stubPaymentRepo {
	return &stubPaymentRepo{invoices: invoices}
}

func (r *stubPaymentRepo) UpdateInvoiceStatus(_ context.Context, number string, status domain.InvoiceStatus, ts time.Time, source string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	inv, ok := r.invoices.invoices[number]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.Status = status
	inv.StatusHistory = append(inv.StatusHistory, domain.StatusChange{Status: status, Timestamp: ts})
	if status == domain.InvoicePaid {
		inv.PaidAt = &ts
	}
	r.updates = append(r.updates, statusUpdate{number: number, status: status, ts: ts, source: source})
	return nil
}

func (r *stubPaymentRepo) InsertEvent(_ context.Context, event *domain.PaymentEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

// --- dedup stub ---

type stubDedup struct {
	seen   map[string]bool
	marked []string
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func dedupKey(number, status string, ts time.Time) string {
	return fmt.Sprintf("%s:%s:%d", number, status, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, number, status string, ts time.Time) (bool, error) {
	return d.seen[dedupKey(number, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, number, status string, ts time.Time) error {
	key := dedupKey(number, status, ts)
	d.seen[key] = true
	d.marked = append(d.marked, key)
	return nil
}

// --- stats cache stub ---

type stubStatsCache struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string][]byte)}
}

func (c *stubStatsCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	raw, ok := c.entries[key]
	return raw, ok, nil
}

func (c *stubStatsCache) Set(_ context.Context, key string, value []byte) error {
	c.sets++
	c.entries[key] = value
	return nil
}
