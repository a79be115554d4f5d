package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// Sender delivers one notification over its channel (email, SMS). The
// default sender only logs; real delivery is plugged in behind this.
type Sender interface {
	Enviar(ctx context.Context, n *types.Notificacion) error
}

type logSender struct {
	log *logger.Logger
}

func (ls *logSender) Enviar(ctx context.Context, n *types.Notificacion) error {
	ls.log.Info("Notificación enviada", "usuario_id", n.UsuarioID, "tipo", n.Tipo, "canal", n.Canal, "asunto", n.Asunto)
	return nil
}

// NewLogSender returns the delivery stub used outside production.
func NewLogSender(log *logger.Logger) Sender {
	return &logSender{log: log.With("service", "LogSender")}
}

// NotificacionService persists a notification row synchronously and delivers
// it in the background. Delivery failure never propagates to the caller:
// a lost email must not roll back a status transition.
type NotificacionService interface {
	Notificar(ctx context.Context, usuarioID uint, solicitudID *uint, tipo, asunto, mensaje string)
	ListarPorUsuario(ctx context.Context, usuarioID uint) ([]*types.Notificacion, error)
	Start()
	Stop()
}

type notificacionService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.NotificacionRepo
	sender   Sender
	cola     chan uint
	wg       sync.WaitGroup
	stopOnce sync.Once
}

const (
	colaNotificaciones = 256
	maxIntentosEnvio   = 3
)

func NewNotificacionService(db *gorm.DB, log *logger.Logger, repo repos.NotificacionRepo, sender Sender) NotificacionService {
	return &notificacionService{
		db:     db,
		log:    log.With("service", "NotificacionService"),
		repo:   repo,
		sender: sender,
		cola:   make(chan uint, colaNotificaciones),
	}
}

func (ns *notificacionService) Start() {
	ns.wg.Add(1)
	go ns.despachar()
}

func (ns *notificacionService) Stop() {
	ns.stopOnce.Do(func() { close(ns.cola) })
	ns.wg.Wait()
}

func (ns *notificacionService) Notificar(ctx context.Context, usuarioID uint, solicitudID *uint, tipo, asunto, mensaje string) {
	n := &types.Notificacion{
		UsuarioID:   usuarioID,
		SolicitudID: solicitudID,
		Tipo:        tipo,
		Canal:       types.CanalEmail,
		Asunto:      asunto,
		Mensaje:     mensaje,
	}
	if _, err := ns.repo.Create(ctx, nil, n); err != nil {
		ns.log.Warn("No se pudo registrar la notificación", "error", err, "usuario_id", usuarioID)
		return
	}

	select {
	case ns.cola <- n.ID:
	default:
		// Cola llena: la fila queda con enviado=false y se reintenta en el
		// siguiente arranque del despachador.
		ns.log.Warn("Cola de notificaciones llena, envío diferido", "notificacion_id", n.ID)
	}
}

func (ns *notificacionService) ListarPorUsuario(ctx context.Context, usuarioID uint) ([]*types.Notificacion, error) {
	return ns.repo.ListByUsuario(ctx, nil, usuarioID)
}

func (ns *notificacionService) despachar() {
	defer ns.wg.Done()
	for id := range ns.cola {
		ns.entregar(id)
	}
}

func (ns *notificacionService) entregar(id uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var n types.Notificacion
	if err := ns.db.WithContext(ctx).First(&n, id).Error; err != nil {
		ns.log.Warn("Notificación desaparecida antes del envío", "notificacion_id", id, "error", err)
		return
	}

	var ultimo error
	for intento := 1; intento <= maxIntentosEnvio; intento++ {
		if ultimo = ns.sender.Enviar(ctx, &n); ultimo == nil {
			now := time.Now()
			n.Enviado = true
			n.FechaEnvio = &now
			n.Intentos = intento
			n.UltimoError = ""
			if err := ns.repo.Update(ctx, nil, &n); err != nil {
				ns.log.Warn("No se pudo marcar la notificación como enviada", "notificacion_id", id, "error", err)
			}
			return
		}
		time.Sleep(time.Duration(intento) * 100 * time.Millisecond)
	}

	n.Intentos = maxIntentosEnvio
	n.UltimoError = ultimo.Error()
	if err := ns.repo.Update(ctx, nil, &n); err != nil {
		ns.log.Warn("No se pudo registrar el fallo de envío", "notificacion_id", id, "error", err)
	}
	ns.log.Warn("Notificación no entregada", "notificacion_id", id, "error", ultimo)
}
