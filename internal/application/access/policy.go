// Package access implementa la política de visibilidad de negocios por rol.
// Son funciones puras sobre (actor, negocio, dueño); la regla se reevalúa en
// cada consulta, nunca se cachea una decisión de autorización.
package access

import (
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CanSeeDeal decide si el actor puede ver (y operar) el negocio.
//
// Reglas, en orden de prioridad:
//  1. admin o director → ve todo, sin condición.
//  2. gerente → ve el negocio si su dueño comparte al menos una sucursal.
//  3. cualquier otro rol (vendedor, asistente...) → solo sus propios negocios.
func CanSeeDeal(actor *entity.User, deal *entity.Deal, owner *entity.User) bool {
	if actor == nil || deal == nil {
		return false
	}
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleDirector:
		return true
	case entity.RoleGerente:
		return actor.SharesBranchWith(owner)
	default:
		return deal.OwnerID == actor.ID
	}
}

// FilterDeals devuelve los negocios visibles para el actor. owners mapea
// OwnerID → User; un dueño ausente (nil) solo afecta la regla de gerente.
func FilterDeals(actor *entity.User, deals []*entity.Deal, owners map[string]*entity.User) []*entity.Deal {
	visible := make([]*entity.Deal, 0, len(deals))
	for _, d := range deals {
		if CanSeeDeal(actor, d, owners[d.OwnerID]) {
			visible = append(visible, d)
		}
	}
	return visible
}
