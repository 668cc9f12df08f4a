package mail_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/infrastructure/mail"
)

func sampleNotification() pipeline.StatusChangeNotification {
	return pipeline.StatusChangeNotification{
		DealTitle:      "Venta licencias",
		ClientName:     "Acme SAS",
		FromStatusName: "Prospecto",
		ToStatusName:   "Propuesta",
		ChangedByName:  "Laura Vendedora",
		DealValue:      decimal.NewFromFloat(1250.5),
		ChangedAt:      time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestSubject_IncluyeNegocioYEtapa(t *testing.T) {
	s := mail.Subject(sampleNotification())
	assert.Equal(t, "[CRM] Venta licencias pasó a Propuesta", s)
}

func TestBody_CargaCompleta(t *testing.T) {
	body := mail.Body(sampleNotification())

	assert.Contains(t, body, `"Venta licencias"`)
	assert.Contains(t, body, "Cliente: Acme SAS")
	assert.Contains(t, body, "Etapa anterior: Prospecto")
	assert.Contains(t, body, "Etapa nueva: Propuesta")
	assert.Contains(t, body, "Valor: 1250.50")
	assert.Contains(t, body, "Movido por: Laura Vendedora")
	assert.Contains(t, body, "Fecha: 2026-03-15 10:30")
}

// Campos opcionales ausentes (lookups best-effort que fallaron) no dejan
// líneas vacías en el correo.
func TestBody_SinDatosOpcionales(t *testing.T) {
	n := sampleNotification()
	n.ClientName = ""
	n.FromStatusName = ""
	n.ChangedByName = ""

	body := mail.Body(n)
	assert.NotContains(t, body, "Cliente:")
	assert.NotContains(t, body, "Etapa anterior:")
	assert.NotContains(t, body, "Movido por:")
	assert.Contains(t, body, "Etapa nueva: Propuesta")
}
