package pipeline

import (
	"sort"

	"github.com/jhoicas/crm-api/internal/application/access"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// BuildBoard agrupa los negocios por etapa en columnas ordenadas por
// order_index (empates resueltos por orden de llegada del slice). Dentro de
// cada columna los negocios van por UpdatedAt descendente: el orden vertical
// es un artefacto de render, no se persiste ningún rank intra-columna. Las
// columnas sin negocios se conservan (renderizan vacías).
//
// Función pura: no toca repositorios ni muta sus argumentos.
func BuildBoard(statuses []*entity.PipelineStatus, deals []*entity.Deal) *dto.BoardResponse {
	ordered := make([]*entity.PipelineStatus, len(statuses))
	copy(ordered, statuses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	byStatus := make(map[string][]*entity.Deal, len(ordered))
	for _, d := range deals {
		byStatus[d.StatusID] = append(byStatus[d.StatusID], d)
	}

	columns := make([]dto.BoardColumnResponse, 0, len(ordered))
	for _, s := range ordered {
		cards := byStatus[s.ID]
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].UpdatedAt.After(cards[j].UpdatedAt)
		})
		items := make([]dto.DealResponse, 0, len(cards))
		for _, d := range cards {
			items = append(items, *toDealResponse(d))
		}
		columns = append(columns, dto.BoardColumnResponse{
			Status: toStatusResponse(s),
			Deals:  items,
		})
	}
	return &dto.BoardResponse{Columns: columns}
}

// Board arma el tablero Kanban de la empresa con los negocios visibles para
// el actor según su rol.
func (uc *UseCase) Board(companyID, actingUserID string) (*dto.BoardResponse, error) {
	actor, err := uc.userRepo.GetByID(actingUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	statuses, err := uc.statusRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	// El tablero carga todos los negocios de la empresa (sin paginar).
	deals, err := uc.dealRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	owners, err := uc.loadOwners(deals)
	if err != nil {
		return nil, err
	}
	visible := access.FilterDeals(actor, deals, owners)
	return BuildBoard(statuses, visible), nil
}

func toStatusResponse(s *entity.PipelineStatus) dto.PipelineStatusResponse {
	return dto.PipelineStatusResponse{
		ID:         s.ID,
		CompanyID:  s.CompanyID,
		Name:       s.Name,
		Color:      s.Color,
		OrderIndex: s.OrderIndex,
		IsDefault:  s.IsDefault,
		BranchID:   s.BranchID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
