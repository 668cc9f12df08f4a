package pipeline_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. GetByID devuelve copias para imitar a la base de datos:
// mutar la entidad devuelta no cambia el estado guardado hasta llamar Update.
// ──────────────────────────────────────────────────────────────────────────────

type fakeDealRepo struct {
	deals []*entity.Deal
}

func (r *fakeDealRepo) Create(d *entity.Deal) error {
	cp := *d
	r.deals = append(r.deals, &cp)
	return nil
}

func (r *fakeDealRepo) GetByID(id string) (*entity.Deal, error) {
	for _, d := range r.deals {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDealRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Deal, error) {
	var out []*entity.Deal
	for _, d := range r.deals {
		if d.CompanyID == companyID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDealRepo) Update(d *entity.Deal) error {
	for i, existing := range r.deals {
		if existing.ID == d.ID {
			cp := *d
			r.deals[i] = &cp
			return nil
		}
	}
	return errors.New("deal no existe")
}

func (r *fakeDealRepo) Delete(id string) error {
	for i, d := range r.deals {
		if d.ID == id {
			r.deals = append(r.deals[:i], r.deals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDealRepo) CountByStatus(statusID string) (int, error) {
	n := 0
	for _, d := range r.deals {
		if d.StatusID == statusID {
			n++
		}
	}
	return n, nil
}

type fakeHistoryRepo struct {
	entries []*entity.DealHistory
}

func (r *fakeHistoryRepo) Create(h *entity.DealHistory) error {
	cp := *h
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeHistoryRepo) ListByDeal(dealID string) ([]*entity.DealHistory, error) {
	var out []*entity.DealHistory
	for _, h := range r.entries {
		if h.DealID == dealID {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangedAt.Before(out[j].ChangedAt)
	})
	return out, nil
}

func (r *fakeHistoryRepo) DeleteByDeal(dealID string) error {
	var kept []*entity.DealHistory
	for _, h := range r.entries {
		if h.DealID != dealID {
			kept = append(kept, h)
		}
	}
	r.entries = kept
	return nil
}

type fakeStatusRepo struct {
	statuses []*entity.PipelineStatus
}

func (r *fakeStatusRepo) Create(s *entity.PipelineStatus) error {
	cp := *s
	r.statuses = append(r.statuses, &cp)
	return nil
}

func (r *fakeStatusRepo) GetByID(id string) (*entity.PipelineStatus, error) {
	for _, s := range r.statuses {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStatusRepo) ListByCompany(companyID string) ([]*entity.PipelineStatus, error) {
	var out []*entity.PipelineStatus
	for _, s := range r.statuses {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeStatusRepo) Update(s *entity.PipelineStatus) error {
	for i, existing := range r.statuses {
		if existing.ID == s.ID {
			cp := *s
			r.statuses[i] = &cp
			return nil
		}
	}
	return errors.New("etapa no existe")
}

func (r *fakeStatusRepo) Delete(id string) error {
	for i, s := range r.statuses {
		if s.ID == id {
			r.statuses = append(r.statuses[:i], r.statuses[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	for i, existing := range r.users {
		if existing.ID == u.ID {
			cp := *u
			r.users[i] = &cp
			return nil
		}
	}
	return errors.New("usuario no existe")
}

func (r *fakeUserRepo) Delete(id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeClientRepo struct {
	clients []*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients = append(r.clients, &cp)
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByCompanyAndEmail(companyID, email string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.CompanyID == companyID && strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) SearchByName(companyID, name string, limit int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	for i, existing := range r.clients {
		if existing.ID == c.ID {
			cp := *c
			r.clients[i] = &cp
			return nil
		}
	}
	return errors.New("cliente no existe")
}

func (r *fakeClientRepo) Delete(id string) error {
	for i, c := range r.clients {
		if c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeTxRunner ejecuta el callback directo sobre los fakes (sin tx real).
// Con fail=true simula un rollback: no ejecuta nada y devuelve error.
type fakeTxRunner struct {
	dealRepo    repository.DealRepository
	historyRepo repository.DealHistoryRepository
	fail        bool
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	dealRepo repository.DealRepository,
	historyRepo repository.DealHistoryRepository,
) error) error {
	if r.fail {
		return errors.New("transacción abortada")
	}
	return fn(r.dealRepo, r.historyRepo)
}

// fakeNotifier captura la notificación en un canal para que el test pueda
// esperar la goroutine del dispatch.
type fakeNotifier struct {
	sent   chan pipeline.StatusChangeNotification
	accept bool
}

func newFakeNotifier(accept bool) *fakeNotifier {
	return &fakeNotifier{sent: make(chan pipeline.StatusChangeNotification, 8), accept: accept}
}

func (n *fakeNotifier) SendStatusChange(msg pipeline.StatusChangeNotification) bool {
	n.sent <- msg
	return n.accept
}
