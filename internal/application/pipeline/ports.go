package pipeline

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el update del negocio y el
// insert del historial se confirmen (o reviertan) juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		dealRepo repository.DealRepository,
		historyRepo repository.DealHistoryRepository,
	) error) error
}

// StatusChangeNotification carga lista para el correo de cambio de etapa.
type StatusChangeNotification struct {
	DealTitle      string
	ClientName     string
	FromStatusName string
	ToStatusName   string
	ChangedByName  string
	DealValue      decimal.Decimal
	ChangedAt      time.Time
}

// Notifier es el side-channel de notificaciones del pipeline. Devuelve true si
// el mensaje fue aceptado para entrega. El state machine lo trata como
// fire-and-forget: un false se registra en el log y jamás revierte ni
// reintenta la transición.
type Notifier interface {
	SendStatusChange(n StatusChangeNotification) bool
}
