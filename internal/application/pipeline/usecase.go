package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/access"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// UseCase es el motor del pipeline: crea/edita/elimina negocios y gobierna la
// regla de transición de etapas con su historial append-only.
//
// Diseño deliberadamente permisivo: cualquier etapa puede transicionar a
// cualquier otra (no hay grafo de adyacencia ni etapas terminales). Dos
// sesiones concurrentes sobre el mismo negocio resuelven por last-write-wins
// en StatusID/UpdatedAt; cada transición conserva su fila de historial.
type UseCase struct {
	dealRepo    repository.DealRepository
	historyRepo repository.DealHistoryRepository
	statusRepo  repository.PipelineStatusRepository
	userRepo    repository.UserRepository
	clientRepo  repository.ClientRepository
	txRunner    TxRunner
	notifier    Notifier // nil = notificaciones deshabilitadas
	log         *logger.Logger
}

// NewUseCase construye el motor del pipeline. notifier puede ser nil.
func NewUseCase(
	dealRepo repository.DealRepository,
	historyRepo repository.DealHistoryRepository,
	statusRepo repository.PipelineStatusRepository,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	txRunner TxRunner,
	notifier Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		dealRepo:    dealRepo,
		historyRepo: historyRepo,
		statusRepo:  statusRepo,
		userRepo:    userRepo,
		clientRepo:  clientRepo,
		txRunner:    txRunner,
		notifier:    notifier,
		log:         log,
	}
}

// CreateDeal crea un negocio con historial vacío. Si StatusID viene vacío se
// asigna la etapa con menor order_index de la empresa.
func (uc *UseCase) CreateDeal(companyID, actingUserID string, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	probability := decimal.Zero
	if in.Probability != nil {
		probability = *in.Probability
	}
	if err := validateDealNumbers(in.Value, probability); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrClientNotFound
	}

	ownerID := in.OwnerID
	if ownerID == "" {
		ownerID = actingUserID
	}
	owner, err := uc.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}

	statusID := in.StatusID
	if statusID == "" {
		statusID, err = uc.defaultStatusID(companyID)
		if err != nil {
			return nil, err
		}
	} else {
		status, err := uc.statusRepo.GetByID(statusID)
		if err != nil {
			return nil, err
		}
		if status == nil || status.CompanyID != companyID {
			return nil, domain.ErrStatusNotFound
		}
	}

	now := time.Now()
	deal := &entity.Deal{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       in.Title,
		ClientID:    in.ClientID,
		Value:       in.Value,
		Probability: probability,
		StatusID:    statusID,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.dealRepo.Create(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// ChangeDealStatus mueve un negocio a otra etapa y registra la transición.
//
// Si newStatusID es la etapa actual la operación es un no-op idempotente: no
// se toca UpdatedAt ni se escribe historial. En caso contrario el update del
// negocio y el insert del historial se confirman en una sola transacción, y
// después del commit se dispara la notificación best-effort en segundo plano.
func (uc *UseCase) ChangeDealStatus(ctx context.Context, dealID, newStatusID, actingUserID, notes string) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, domain.ErrDealNotFound
	}

	newStatus, err := uc.statusRepo.GetByID(newStatusID)
	if err != nil {
		return nil, err
	}
	if newStatus == nil || newStatus.CompanyID != deal.CompanyID {
		return nil, domain.ErrStatusNotFound
	}

	actor, err := uc.userRepo.GetByID(actingUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}

	// No-op: ya está en esa etapa.
	if deal.StatusID == newStatusID {
		return toDealResponse(deal), nil
	}

	fromStatusID := deal.StatusID
	now := time.Now()
	deal.StatusID = newStatusID
	deal.UpdatedAt = now

	hist := &entity.DealHistory{
		ID:           uuid.New().String(),
		DealID:       deal.ID,
		FromStatusID: fromStatusID,
		ToStatusID:   newStatusID,
		ChangedByID:  actingUserID,
		Notes:        notes,
		ChangedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		dealRepo repository.DealRepository,
		historyRepo repository.DealHistoryRepository,
	) error {
		if err := dealRepo.Update(deal); err != nil {
			return err
		}
		return historyRepo.Create(hist)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatchNotification(deal, actor, fromStatusID, newStatus, now)

	return toDealResponse(deal), nil
}

// UpdateDeal edita atributos del negocio. La etapa no se toca por aquí (y por
// tanto nunca genera historial); usar ChangeDealStatus.
func (uc *UseCase) UpdateDeal(dealID string, in dto.UpdateDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, domain.ErrDealNotFound
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		deal.Title = *in.Title
	}
	if in.ClientID != nil {
		client, err := uc.clientRepo.GetByID(*in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.CompanyID != deal.CompanyID {
			return nil, domain.ErrClientNotFound
		}
		deal.ClientID = *in.ClientID
	}
	if in.OwnerID != nil {
		owner, err := uc.userRepo.GetByID(*in.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.CompanyID != deal.CompanyID {
			return nil, domain.ErrUserNotFound
		}
		deal.OwnerID = *in.OwnerID
	}
	value := deal.Value
	if in.Value != nil {
		value = *in.Value
	}
	probability := deal.Probability
	if in.Probability != nil {
		probability = *in.Probability
	}
	if err := validateDealNumbers(value, probability); err != nil {
		return nil, err
	}
	deal.Value = value
	deal.Probability = probability
	deal.UpdatedAt = time.Now()

	if err := uc.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// DeleteDeal elimina un negocio y descarta todo su historial. Irreversible;
// la confirmación del usuario es responsabilidad de la UI.
func (uc *UseCase) DeleteDeal(ctx context.Context, dealID string) error {
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil {
		return err
	}
	if deal == nil {
		return domain.ErrDealNotFound
	}
	return uc.txRunner.Run(ctx, func(
		dealRepo repository.DealRepository,
		historyRepo repository.DealHistoryRepository,
	) error {
		if err := historyRepo.DeleteByDeal(dealID); err != nil {
			return err
		}
		return dealRepo.Delete(dealID)
	})
}

// History devuelve el historial del negocio en orden cronológico.
func (uc *UseCase) History(dealID string) ([]dto.DealHistoryResponse, error) {
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, domain.ErrDealNotFound
	}
	entries, err := uc.historyRepo.ListByDeal(dealID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DealHistoryResponse, 0, len(entries))
	for _, h := range entries {
		out = append(out, dto.DealHistoryResponse{
			ID:           h.ID,
			DealID:       h.DealID,
			FromStatusID: h.FromStatusID,
			ToStatusID:   h.ToStatusID,
			ChangedByID:  h.ChangedByID,
			Notes:        h.Notes,
			ChangedAt:    h.ChangedAt,
		})
	}
	return out, nil
}

// GetVisibleDeal devuelve el negocio solo si el actor puede verlo según su rol.
func (uc *UseCase) GetVisibleDeal(actingUserID, dealID string) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, domain.ErrDealNotFound
	}
	actor, err := uc.userRepo.GetByID(actingUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	owner, err := uc.userRepo.GetByID(deal.OwnerID)
	if err != nil {
		return nil, err
	}
	if !access.CanSeeDeal(actor, deal, owner) {
		return nil, domain.ErrForbidden
	}
	return toDealResponse(deal), nil
}

// ListVisibleDeals lista los negocios de la empresa que el actor puede ver.
// La regla se reevalúa en cada llamada; no hay decisión de autorización cacheada.
func (uc *UseCase) ListVisibleDeals(companyID, actingUserID string, limit, offset int) (*dto.DealListResponse, error) {
	actor, err := uc.userRepo.GetByID(actingUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	deals, err := uc.dealRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	owners, err := uc.loadOwners(deals)
	if err != nil {
		return nil, err
	}
	visible := access.FilterDeals(actor, deals, owners)
	items := make([]dto.DealResponse, 0, len(visible))
	for _, d := range visible {
		items = append(items, *toDealResponse(d))
	}
	return &dto.DealListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// defaultStatusID devuelve la etapa con menor order_index de la empresa.
func (uc *UseCase) defaultStatusID(companyID string) (string, error) {
	statuses, err := uc.statusRepo.ListByCompany(companyID)
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "", domain.ErrStatusNotFound
	}
	// ListByCompany ya ordena por order_index ASC, created_at ASC.
	return statuses[0].ID, nil
}

// loadOwners carga los dueños de los negocios una sola vez por ID.
func (uc *UseCase) loadOwners(deals []*entity.Deal) (map[string]*entity.User, error) {
	owners := make(map[string]*entity.User)
	for _, d := range deals {
		if _, ok := owners[d.OwnerID]; ok {
			continue
		}
		owner, err := uc.userRepo.GetByID(d.OwnerID)
		if err != nil {
			return nil, err
		}
		owners[d.OwnerID] = owner
	}
	return owners, nil
}

// dispatchNotification arma la carga de la notificación y la envía en una
// goroutine. Best-effort: fallos de lookup o de envío solo se registran.
func (uc *UseCase) dispatchNotification(deal *entity.Deal, actor *entity.User, fromStatusID string, toStatus *entity.PipelineStatus, changedAt time.Time) {
	if uc.notifier == nil {
		return
	}
	// Copias para no compartir el puntero del deal con la goroutine.
	n := StatusChangeNotification{
		DealTitle:    deal.Title,
		ToStatusName: toStatus.Name,
		DealValue:    deal.Value,
		ChangedAt:    changedAt,
	}
	if actor != nil {
		n.ChangedByName = actor.Name
	}
	dealID := deal.ID
	clientID := deal.ClientID

	go func() {
		if from, err := uc.statusRepo.GetByID(fromStatusID); err == nil && from != nil {
			n.FromStatusName = from.Name
		}
		if client, err := uc.clientRepo.GetByID(clientID); err == nil && client != nil {
			n.ClientName = client.Name
		}
		if ok := uc.notifier.SendStatusChange(n); !ok {
			if uc.log != nil {
				uc.log.Warn().
					Str("deal_id", dealID).
					Str("to_status", n.ToStatusName).
					Msg("notificación de cambio de etapa no entregada")
			}
		}
	}()
}

func validateDealNumbers(value, probability decimal.Decimal) error {
	if value.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if probability.LessThan(decimal.Zero) || probability.GreaterThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toDealResponse(d *entity.Deal) *dto.DealResponse {
	if d == nil {
		return nil
	}
	return &dto.DealResponse{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		Title:       d.Title,
		ClientID:    d.ClientID,
		Value:       d.Value,
		Probability: d.Probability,
		StatusID:    d.StatusID,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
