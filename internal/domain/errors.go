package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDealNotFound       = errors.New("negocio no encontrado")
	ErrStatusNotFound     = errors.New("etapa del pipeline no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrClientNotFound     = errors.New("cliente no encontrado")
	ErrStatusInUse        = errors.New("la etapa tiene negocios asociados y no puede eliminarse")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
