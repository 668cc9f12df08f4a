package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

const (
	coID     = "co-1"
	userID   = "user-1"
	clientID = "client-1"
)

// env agrupa los fakes y el use case bajo prueba.
type env struct {
	deals    *fakeDealRepo
	history  *fakeHistoryRepo
	statuses *fakeStatusRepo
	users    *fakeUserRepo
	clients  *fakeClientRepo
	notifier *fakeNotifier
	uc       *pipeline.UseCase
}

// newEnv arma una empresa con un embudo de 4 etapas (s1..s4), un vendedor y
// un cliente. notifier nil = notificaciones deshabilitadas.
func newEnv(notifier *fakeNotifier) *env {
	e := &env{
		deals:    &fakeDealRepo{},
		history:  &fakeHistoryRepo{},
		statuses: &fakeStatusRepo{},
		users:    &fakeUserRepo{},
		clients:  &fakeClientRepo{},
		notifier: notifier,
	}
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"Prospecto", "Contactado", "Propuesta", "Cerrado"} {
		e.statuses.statuses = append(e.statuses.statuses, &entity.PipelineStatus{
			ID:         "s" + string(rune('1'+i)),
			CompanyID:  coID,
			Name:       name,
			OrderIndex: i,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	e.users.users = append(e.users.users, &entity.User{
		ID: userID, CompanyID: coID, Name: "Laura Vendedora", Role: entity.RoleVendedor, Status: "active",
	})
	e.clients.clients = append(e.clients.clients, &entity.Client{
		ID: clientID, CompanyID: coID, Name: "Acme SAS",
	})

	tx := &fakeTxRunner{dealRepo: e.deals, historyRepo: e.history}
	var n pipeline.Notifier
	if notifier != nil {
		n = notifier
	}
	e.uc = pipeline.NewUseCase(e.deals, e.history, e.statuses, e.users, e.clients, tx, n, nil)
	return e
}

func (e *env) createDeal(t *testing.T, statusID string) *dto.DealResponse {
	t.Helper()
	deal, err := e.uc.CreateDeal(coID, userID, dto.CreateDealRequest{
		Title:    "Venta licencias",
		ClientID: clientID,
		Value:    decimal.NewFromInt(1000),
		StatusID: statusID,
	})
	require.NoError(t, err)
	return deal
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeDealStatus
// ──────────────────────────────────────────────────────────────────────────────

// Una transición efectiva escribe exactamente una entrada de historial con
// from/to correctos y actualiza la etapa del negocio.
func TestChangeDealStatus_TransicionRegistraHistorial(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")

	moved, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "s2", userID, "cliente respondió")
	require.NoError(t, err)
	assert.Equal(t, "s2", moved.StatusID)

	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1, "una transición efectiva = una entrada de historial")
	assert.Equal(t, "s1", hist[0].FromStatusID)
	assert.Equal(t, "s2", hist[0].ToStatusID)
	assert.Equal(t, userID, hist[0].ChangedByID)
	assert.Equal(t, "cliente respondió", hist[0].Notes)
	assert.Equal(t, moved.UpdatedAt, hist[0].ChangedAt,
		"la entrada comparte el timestamp del update del negocio")
}

// Mover a la etapa actual es un no-op idempotente: responde el negocio sin
// cambios y no escribe historial.
func TestChangeDealStatus_MismaEtapa_NoOp(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")

	same, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "s1", userID, "")
	require.NoError(t, err)
	assert.Equal(t, "s1", same.StatusID)
	assert.Equal(t, deal.UpdatedAt, same.UpdatedAt, "el no-op no toca UpdatedAt")

	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	assert.Empty(t, hist, "el no-op no deja rastro en el historial")
}

func TestChangeDealStatus_NegocioInexistente(t *testing.T) {
	e := newEnv(nil)
	_, err := e.uc.ChangeDealStatus(context.Background(), "no-existe", "s2", userID, "")
	assert.ErrorIs(t, err, domain.ErrDealNotFound)
}

func TestChangeDealStatus_EtapaInexistente(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")
	_, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "no-existe", userID, "")
	assert.ErrorIs(t, err, domain.ErrStatusNotFound)
}

// Una etapa de otra empresa no es destino válido aunque exista.
func TestChangeDealStatus_EtapaDeOtraEmpresa(t *testing.T) {
	e := newEnv(nil)
	e.statuses.statuses = append(e.statuses.statuses, &entity.PipelineStatus{
		ID: "ajena", CompanyID: "co-2", Name: "Etapa ajena",
	})
	deal := e.createDeal(t, "s1")
	_, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "ajena", userID, "")
	assert.ErrorIs(t, err, domain.ErrStatusNotFound)
}

// N transiciones dejan N entradas encadenadas en orden cronológico: el to de
// cada una es el from de la siguiente.
func TestChangeDealStatus_HistorialEncadenado(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")
	ctx := context.Background()

	for _, to := range []string{"s2", "s3", "s4", "s2"} {
		_, err := e.uc.ChangeDealStatus(ctx, deal.ID, to, userID, "")
		require.NoError(t, err)
	}

	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	require.Len(t, hist, 4)
	assert.Equal(t, "s1", hist[0].FromStatusID)
	for i := 1; i < len(hist); i++ {
		assert.Equal(t, hist[i-1].ToStatusID, hist[i].FromStatusID,
			"las transiciones deben encadenarse")
		assert.False(t, hist[i].ChangedAt.Before(hist[i-1].ChangedAt),
			"el historial va en orden cronológico ascendente")
	}
	assert.Equal(t, "s2", hist[3].ToStatusID)
}

// Flujo completo: mover y repetir el movimiento. La repetición no duplica
// historial ni altera el estado.
func TestChangeDealStatus_RepetirMovimientoEsIdempotente(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")
	ctx := context.Background()

	first, err := e.uc.ChangeDealStatus(ctx, deal.ID, "s4", userID, "cierre directo")
	require.NoError(t, err)
	assert.Equal(t, "s4", first.StatusID)

	second, err := e.uc.ChangeDealStatus(ctx, deal.ID, "s4", userID, "repetido")
	require.NoError(t, err)
	assert.Equal(t, "s4", second.StatusID)

	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "repetir el movimiento no duplica la entrada")
}

// Si la transacción falla no queda ni el cambio de etapa ni historial.
func TestChangeDealStatus_TxFallida_NoDejaRastro(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")
	e.uc = pipeline.NewUseCase(
		e.deals, e.history, e.statuses, e.users, e.clients,
		&fakeTxRunner{dealRepo: e.deals, historyRepo: e.history, fail: true},
		nil, nil,
	)

	_, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "s2", userID, "")
	require.Error(t, err)

	stored, err := e.uc.GetVisibleDeal(userID, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, "s1", stored.StatusID, "la etapa no debe cambiar si la tx falla")
	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

// La notificación sale en segundo plano con la carga completa.
func TestChangeDealStatus_DisparaNotificacion(t *testing.T) {
	notifier := newFakeNotifier(true)
	e := newEnv(notifier)
	deal := e.createDeal(t, "s1")

	_, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "s3", userID, "")
	require.NoError(t, err)

	select {
	case n := <-notifier.sent:
		assert.Equal(t, "Venta licencias", n.DealTitle)
		assert.Equal(t, "Acme SAS", n.ClientName)
		assert.Equal(t, "Prospecto", n.FromStatusName)
		assert.Equal(t, "Propuesta", n.ToStatusName)
		assert.Equal(t, "Laura Vendedora", n.ChangedByName)
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación nunca se envió")
	}
}

// Un notifier que rechaza el mensaje no afecta la transición.
func TestChangeDealStatus_NotificacionRechazada_NoRevierte(t *testing.T) {
	notifier := newFakeNotifier(false)
	e := newEnv(notifier)
	deal := e.createDeal(t, "s1")

	moved, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "s2", userID, "")
	require.NoError(t, err)
	assert.Equal(t, "s2", moved.StatusID)

	select {
	case <-notifier.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación nunca se intentó")
	}

	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 1, "el rechazo del correo no toca el historial")
}

// El no-op no dispara notificaciones.
func TestChangeDealStatus_NoOpNoNotifica(t *testing.T) {
	notifier := newFakeNotifier(true)
	e := newEnv(notifier)
	deal := e.createDeal(t, "s1")

	_, err := e.uc.ChangeDealStatus(context.Background(), deal.ID, "s1", userID, "")
	require.NoError(t, err)

	select {
	case <-notifier.sent:
		t.Fatal("el no-op no debe notificar")
	case <-time.After(100 * time.Millisecond):
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateDeal / UpdateDeal / DeleteDeal
// ──────────────────────────────────────────────────────────────────────────────

// Sin etapa explícita el negocio entra en la de menor order_index.
func TestCreateDeal_EtapaPorDefecto(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "")
	assert.Equal(t, "s1", deal.StatusID)
}

func TestCreateDeal_ValoresInvalidos(t *testing.T) {
	e := newEnv(nil)
	negative := decimal.NewFromInt(-5)
	_, err := e.uc.CreateDeal(coID, userID, dto.CreateDealRequest{
		Title: "x", ClientID: clientID, Value: negative,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor negativo")

	tooHigh := decimal.NewFromInt(2)
	_, err = e.uc.CreateDeal(coID, userID, dto.CreateDealRequest{
		Title: "x", ClientID: clientID, Probability: &tooHigh,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "probabilidad fuera de [0,1]")
}

// UpdateDeal nunca toca la etapa y por tanto nunca genera historial.
func TestUpdateDeal_NoTocaEtapaNiHistorial(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s2")

	title := "Venta renovación"
	updated, err := e.uc.UpdateDeal(deal.ID, dto.UpdateDealRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Venta renovación", updated.Title)
	assert.Equal(t, "s2", updated.StatusID)

	hist, err := e.uc.History(deal.ID)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestDeleteDeal_DescartaHistorial(t *testing.T) {
	e := newEnv(nil)
	deal := e.createDeal(t, "s1")
	ctx := context.Background()
	_, err := e.uc.ChangeDealStatus(ctx, deal.ID, "s2", userID, "")
	require.NoError(t, err)

	require.NoError(t, e.uc.DeleteDeal(ctx, deal.ID))

	assert.Empty(t, e.history.entries, "el historial del negocio eliminado se descarta")
	_, err = e.uc.GetVisibleDeal(userID, deal.ID)
	assert.ErrorIs(t, err, domain.ErrDealNotFound)
}
