package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client (clientes/leads).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByCompanyAndEmail(companyID, email string) (*entity.Client, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error)
	// SearchByName busca por coincidencia parcial de nombre (case-insensitive).
	SearchByName(companyID, name string, limit int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
}
