// Package mail implementa el Notifier del pipeline sobre SMTP usando gomail.
package mail

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

var _ pipeline.Notifier = (*Notifier)(nil)

// Notifier envía correos de cambio de etapa. Best-effort: cualquier fallo de
// transporte se registra y se reporta como false, nunca como error.
type Notifier struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewNotifier construye el notificador SMTP.
func NewNotifier(cfg config.SMTPConfig, log *logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, log: log}
}

// SendStatusChange envía la alerta de cambio de etapa por correo.
// Devuelve true si el servidor SMTP aceptó el mensaje.
func (n *Notifier) SendStatusChange(msg pipeline.StatusChangeNotification) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", Subject(msg))
	m.SetBody("text/plain", Body(msg))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		n.log.Warn().Err(err).
			Str("deal", msg.DealTitle).
			Str("to_status", msg.ToStatusName).
			Msg("no se pudo enviar la notificación de cambio de etapa")
		return false
	}
	return true
}

// Subject arma el asunto del correo de cambio de etapa.
func Subject(msg pipeline.StatusChangeNotification) string {
	return fmt.Sprintf("[CRM] %s pasó a %s", msg.DealTitle, msg.ToStatusName)
}

// Body arma el cuerpo de texto plano. Función pura para poder probarla sin SMTP.
func Body(msg pipeline.StatusChangeNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "El negocio %q cambió de etapa.\n\n", msg.DealTitle)
	if msg.ClientName != "" {
		fmt.Fprintf(&b, "Cliente: %s\n", msg.ClientName)
	}
	if msg.FromStatusName != "" {
		fmt.Fprintf(&b, "Etapa anterior: %s\n", msg.FromStatusName)
	}
	fmt.Fprintf(&b, "Etapa nueva: %s\n", msg.ToStatusName)
	fmt.Fprintf(&b, "Valor: %s\n", msg.DealValue.StringFixed(2))
	if msg.ChangedByName != "" {
		fmt.Fprintf(&b, "Movido por: %s\n", msg.ChangedByName)
	}
	fmt.Fprintf(&b, "Fecha: %s\n", msg.ChangedAt.Format("2006-01-02 15:04"))
	return b.String()
}
