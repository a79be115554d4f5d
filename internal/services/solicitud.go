package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// SolicitudService drives an application after submission: review, approval,
// rejection, license issuance and closure. Every status change goes through
// the domain transition table inside one transaction together with its audit
// row, so the expediente can never show a status its history does not back.
type SolicitudService interface {
	Detalle(ctx context.Context, id uint) (*types.Solicitud, error)
	DetalleDelUsuario(ctx context.Context, id, usuarioID uint) (*types.Solicitud, error)
	ListarPorUsuario(ctx context.Context, usuarioID uint) ([]*types.Solicitud, error)
	Listar(ctx context.Context, filtro repos.FiltroSolicitudes) ([]*types.Solicitud, int64, error)
	Historial(ctx context.Context, solicitudID uint) ([]*types.Auditoria, error)

	IniciarRevision(ctx context.Context, solicitudID, funcionarioID uint) (*types.Solicitud, error)
	Aprobar(ctx context.Context, solicitudID, funcionarioID uint, observaciones string) (*types.Solicitud, error)
	Rechazar(ctx context.Context, solicitudID, funcionarioID uint, motivo string) (*types.Solicitud, error)
	EmitirLicencia(ctx context.Context, solicitudID, funcionarioID uint) (*types.Solicitud, error)
	Finalizar(ctx context.Context, solicitudID, funcionarioID uint) (*types.Solicitud, error)
	Cancelar(ctx context.Context, solicitudID, usuarioID uint) (*types.Solicitud, error)

	VerificarLicencia(ctx context.Context, numeroLicencia, codigoVerificador string) (*types.Solicitud, error)
}

type solicitudService struct {
	db             *gorm.DB
	log            *logger.Logger
	solicitudRepo  repos.SolicitudRepo
	auditoriaRepo  repos.AuditoriaRepo
	notificaciones NotificacionService
}

func NewSolicitudService(
	db *gorm.DB,
	log *logger.Logger,
	solicitudRepo repos.SolicitudRepo,
	auditoriaRepo repos.AuditoriaRepo,
	notificaciones NotificacionService,
) SolicitudService {
	return &solicitudService{
		db:             db,
		log:            log.With("service", "SolicitudService"),
		solicitudRepo:  solicitudRepo,
		auditoriaRepo:  auditoriaRepo,
		notificaciones: notificaciones,
	}
}

func (ss *solicitudService) Detalle(ctx context.Context, id uint) (*types.Solicitud, error) {
	return ss.solicitudRepo.GetByID(ctx, nil, id)
}

// DetalleDelUsuario hides other users' expedientes behind not-found.
func (ss *solicitudService) DetalleDelUsuario(ctx context.Context, id, usuarioID uint) (*types.Solicitud, error) {
	s, err := ss.solicitudRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if s.UsuarioID != usuarioID {
		return nil, domain.NotFoundError("solicitud no encontrada")
	}
	return s, nil
}

func (ss *solicitudService) ListarPorUsuario(ctx context.Context, usuarioID uint) ([]*types.Solicitud, error) {
	return ss.solicitudRepo.ListByUsuario(ctx, nil, usuarioID)
}

func (ss *solicitudService) Listar(ctx context.Context, filtro repos.FiltroSolicitudes) ([]*types.Solicitud, int64, error) {
	return ss.solicitudRepo.List(ctx, nil, filtro)
}

func (ss *solicitudService) Historial(ctx context.Context, solicitudID uint) ([]*types.Auditoria, error) {
	if _, err := ss.solicitudRepo.GetByID(ctx, nil, solicitudID); err != nil {
		return nil, err
	}
	return ss.auditoriaRepo.ListBySolicitud(ctx, nil, solicitudID)
}

func (ss *solicitudService) IniciarRevision(ctx context.Context, solicitudID, funcionarioID uint) (*types.Solicitud, error) {
	s, err := ss.transicionar(ctx, solicitudID, domain.EstadoEnRevision, funcionarioID, "iniciar_revision", "", nil)
	if err != nil {
		return nil, err
	}
	ss.notificaciones.Notificar(ctx, s.UsuarioID, &s.ID, "revision_iniciada",
		"Tu solicitud está en revisión",
		fmt.Sprintf("El expediente %s entró en revisión técnica.", s.NumeroExpediente))
	return s, nil
}

func (ss *solicitudService) Aprobar(ctx context.Context, solicitudID, funcionarioID uint, observaciones string) (*types.Solicitud, error) {
	s, err := ss.transicionar(ctx, solicitudID, domain.EstadoAprobado, funcionarioID, "aprobar", observaciones, nil)
	if err != nil {
		return nil, err
	}
	ss.notificaciones.Notificar(ctx, s.UsuarioID, &s.ID, "solicitud_aprobada",
		"Tu solicitud fue aprobada",
		fmt.Sprintf("El expediente %s fue aprobado. Pronto se emitirá tu licencia.", s.NumeroExpediente))
	return s, nil
}

func (ss *solicitudService) Rechazar(ctx context.Context, solicitudID, funcionarioID uint, motivo string) (*types.Solicitud, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return nil, domain.ValidationError("el motivo de rechazo es obligatorio")
	}
	s, err := ss.transicionar(ctx, solicitudID, domain.EstadoRechazado, funcionarioID, "rechazar", motivo, nil)
	if err != nil {
		return nil, err
	}
	ss.notificaciones.Notificar(ctx, s.UsuarioID, &s.ID, "solicitud_rechazada",
		"Tu solicitud fue rechazada",
		fmt.Sprintf("El expediente %s fue rechazado: %s", s.NumeroExpediente, motivo))
	return s, nil
}

func (ss *solicitudService) EmitirLicencia(ctx context.Context, solicitudID, funcionarioID uint) (*types.Solicitud, error) {
	s, err := ss.transicionar(ctx, solicitudID, domain.EstadoLicenciaEmitida, funcionarioID, "emitir_licencia", "",
		func(s *types.Solicitud) {
			now := time.Now()
			s.NumeroLicencia = domain.NumeroLicencia(now, s.ID)
			s.CodigoVerificador = domain.CodigoVerificador()
			s.FechaEmision = &now
			vencimiento := now.AddDate(2, 0, 0)
			s.FechaVencimiento = &vencimiento
			proxima := now.AddDate(0, 6, 0)
			s.ProximaInspeccion = &proxima
		})
	if err != nil {
		return nil, err
	}
	ss.notificaciones.Notificar(ctx, s.UsuarioID, &s.ID, "licencia_emitida",
		"Tu licencia fue emitida",
		fmt.Sprintf("Se emitió la licencia %s del expediente %s.", s.NumeroLicencia, s.NumeroExpediente))
	return s, nil
}

func (ss *solicitudService) Finalizar(ctx context.Context, solicitudID, funcionarioID uint) (*types.Solicitud, error) {
	return ss.transicionar(ctx, solicitudID, domain.EstadoFinalizado, funcionarioID, "finalizar", "", nil)
}

// Cancelar is citizen-initiated, so the owner check applies before the
// transition table does.
func (ss *solicitudService) Cancelar(ctx context.Context, solicitudID, usuarioID uint) (*types.Solicitud, error) {
	s, err := ss.solicitudRepo.GetByID(ctx, nil, solicitudID)
	if err != nil {
		return nil, err
	}
	if s.UsuarioID != usuarioID {
		return nil, domain.NotFoundError("solicitud no encontrada")
	}
	return ss.transicionar(ctx, solicitudID, domain.EstadoCancelado, usuarioID, "cancelar", "cancelada por el solicitante", nil)
}

func (ss *solicitudService) VerificarLicencia(ctx context.Context, numeroLicencia, codigoVerificador string) (*types.Solicitud, error) {
	s, err := ss.solicitudRepo.GetByLicencia(ctx, nil, strings.TrimSpace(numeroLicencia))
	if err != nil {
		return nil, err
	}
	if s.CodigoVerificador != strings.ToUpper(strings.TrimSpace(codigoVerificador)) {
		return nil, domain.NotFoundError("licencia no encontrada")
	}
	return s, nil
}

// transicionar loads, validates and persists one status change plus its
// audit row in a single transaction. mutar runs after the transition is
// validated and before the save.
func (ss *solicitudService) transicionar(
	ctx context.Context,
	solicitudID uint,
	destino domain.EstadoSolicitud,
	actorID uint,
	accion, detalle string,
	mutar func(*types.Solicitud),
) (*types.Solicitud, error) {
	var s *types.Solicitud
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		s, err = ss.solicitudRepo.GetByID(ctx, tx, solicitudID)
		if err != nil {
			return err
		}

		anterior := s.Estado
		nuevo, err := anterior.Transicionar(destino)
		if err != nil {
			return err
		}
		s.Estado = nuevo
		if mutar != nil {
			mutar(s)
		}
		if err := ss.solicitudRepo.Update(ctx, tx, s); err != nil {
			return err
		}

		actor := actorID
		_, err = ss.auditoriaRepo.Create(ctx, tx, &types.Auditoria{
			SolicitudID:    s.ID,
			UsuarioID:      &actor,
			Accion:         accion,
			EstadoAnterior: string(anterior),
			EstadoNuevo:    string(nuevo),
			Detalle:        detalle,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	ss.log.Info("Solicitud transicionada", "solicitud_id", s.ID, "accion", accion, "estado", s.Estado)
	return s, nil
}
