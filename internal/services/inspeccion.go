package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// InspeccionService manages ITSE visits. Scheduling moves the application to
// pendiente_itse; closing a visit cascades its outcome onto the application
// inside the same transaction, so an approved inspection can never leave the
// expediente behind.
type InspeccionService interface {
	Programar(ctx context.Context, solicitudID uint, inspectorID *uint, fecha time.Time, funcionarioID uint) (*types.Inspeccion, error)
	Iniciar(ctx context.Context, inspeccionID, inspectorID uint) (*types.Inspeccion, error)
	Registrar(ctx context.Context, inspeccionID, inspectorID uint, checklist domain.Checklist, observaciones, recomendaciones string) (*types.Inspeccion, error)
	Detalle(ctx context.Context, inspeccionID uint) (*types.Inspeccion, error)
	ListarPorSolicitud(ctx context.Context, solicitudID uint) ([]*types.Inspeccion, error)
	AgendaDelInspector(ctx context.Context, inspectorID uint, estado string) ([]*types.Inspeccion, error)
}

type inspeccionService struct {
	db             *gorm.DB
	log            *logger.Logger
	inspeccionRepo repos.InspeccionRepo
	solicitudRepo  repos.SolicitudRepo
	auditoriaRepo  repos.AuditoriaRepo
	notificaciones NotificacionService
}

func NewInspeccionService(
	db *gorm.DB,
	log *logger.Logger,
	inspeccionRepo repos.InspeccionRepo,
	solicitudRepo repos.SolicitudRepo,
	auditoriaRepo repos.AuditoriaRepo,
	notificaciones NotificacionService,
) InspeccionService {
	return &inspeccionService{
		db:             db,
		log:            log.With("service", "InspeccionService"),
		inspeccionRepo: inspeccionRepo,
		solicitudRepo:  solicitudRepo,
		auditoriaRepo:  auditoriaRepo,
		notificaciones: notificaciones,
	}
}

func (is *inspeccionService) Programar(ctx context.Context, solicitudID uint, inspectorID *uint, fecha time.Time, funcionarioID uint) (*types.Inspeccion, error) {
	if fecha.Before(time.Now()) {
		return nil, domain.ValidationError("la fecha programada debe ser futura")
	}

	var insp *types.Inspeccion
	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := is.solicitudRepo.GetByID(ctx, tx, solicitudID)
		if err != nil {
			return err
		}

		anterior := s.Estado
		if anterior != domain.EstadoPendienteITSE {
			nuevo, err := anterior.Transicionar(domain.EstadoPendienteITSE)
			if err != nil {
				return err
			}
			s.Estado = nuevo
			if err := is.solicitudRepo.Update(ctx, tx, s); err != nil {
				return err
			}
		}

		insp, err = is.inspeccionRepo.Create(ctx, tx, &types.Inspeccion{
			SolicitudID:     s.ID,
			InspectorID:     inspectorID,
			FechaProgramada: fecha,
			Estado:          domain.InspeccionProgramada,
		})
		if err != nil {
			return err
		}

		actor := funcionarioID
		_, err = is.auditoriaRepo.Create(ctx, tx, &types.Auditoria{
			SolicitudID:    s.ID,
			UsuarioID:      &actor,
			Accion:         "programar_inspeccion",
			EstadoAnterior: string(anterior),
			EstadoNuevo:    string(s.Estado),
			Detalle:        "inspección programada para " + fecha.Format("2006-01-02 15:04"),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if s, err := is.solicitudRepo.GetByID(ctx, nil, solicitudID); err == nil {
		is.notificaciones.Notificar(ctx, s.UsuarioID, &s.ID, "inspeccion_programada",
			"Inspección ITSE programada",
			fmt.Sprintf("Tu local será inspeccionado el %s.", fecha.Format("02/01/2006")))
	}
	return insp, nil
}

func (is *inspeccionService) Iniciar(ctx context.Context, inspeccionID, inspectorID uint) (*types.Inspeccion, error) {
	insp, err := is.inspeccionRepo.GetByID(ctx, nil, inspeccionID)
	if err != nil {
		return nil, err
	}
	if insp.InspectorID != nil && *insp.InspectorID != inspectorID {
		return nil, domain.NotFoundError("inspección no encontrada")
	}
	if insp.Estado != domain.InspeccionProgramada {
		return nil, domain.ConflictError("la inspección no está programada")
	}

	insp.Estado = domain.InspeccionEnCurso
	if insp.InspectorID == nil {
		insp.InspectorID = &inspectorID
	}
	if err := is.inspeccionRepo.Update(ctx, nil, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

// Registrar closes the visit: it derives the outcome from the checklist and
// applies it to the application. An approved visit marks the ITSE as passed;
// a rejected one forces the expediente to rechazado from wherever it was.
func (is *inspeccionService) Registrar(ctx context.Context, inspeccionID, inspectorID uint, checklist domain.Checklist, observaciones, recomendaciones string) (*types.Inspeccion, error) {
	var insp *types.Inspeccion
	var solicitud *types.Solicitud

	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		insp, err = is.inspeccionRepo.GetByID(ctx, tx, inspeccionID)
		if err != nil {
			return err
		}
		if insp.InspectorID != nil && *insp.InspectorID != inspectorID {
			return domain.NotFoundError("inspección no encontrada")
		}
		switch insp.Estado {
		case domain.InspeccionProgramada, domain.InspeccionEnCurso:
		default:
			return domain.ConflictError("la inspección ya fue cerrada")
		}

		now := time.Now()
		resultado := checklist.Resultado()

		insp.Extintores = checklist.Extintores
		insp.LucesEmergencia = checklist.LucesEmergencia
		insp.Senalizacion = checklist.Senalizacion
		insp.SistemaElectrico = checklist.SistemaElectrico
		insp.ViaEvacuacion = checklist.ViaEvacuacion
		insp.Observaciones = observaciones
		insp.Recomendaciones = recomendaciones
		insp.Resultado = resultado
		insp.FechaRealizada = &now

		solicitud, err = is.solicitudRepo.GetByID(ctx, tx, insp.SolicitudID)
		if err != nil {
			return err
		}
		anterior := solicitud.Estado

		switch resultado {
		case domain.ResultadoAprobado:
			insp.Estado = domain.InspeccionAprobada
			vence := now.AddDate(2, 0, 0)
			insp.FechaVencimiento = &vence

			nuevo, err := anterior.Transicionar(domain.EstadoITSEAprobado)
			if err != nil {
				return err
			}
			solicitud.Estado = nuevo
			solicitud.ITSEAprobado = true
			solicitud.FechaITSE = &now
			solicitud.NumeroITSE = fmt.Sprintf("ITSE-%d-%d", now.Year(), insp.ID)
			solicitud.VencimientoITSE = &vence

		case domain.ResultadoObservado:
			// Con observaciones el expediente no se mueve: se reprograma una
			// nueva visita cuando el local subsana.
			insp.Estado = domain.InspeccionRealizada

		case domain.ResultadoRechazado:
			insp.Estado = domain.InspeccionRechazada
			nuevo, err := anterior.ForzarRechazo()
			if err != nil {
				return err
			}
			solicitud.Estado = nuevo
		}

		solicitud.FechaUltimaInspeccion = &now
		if err := is.solicitudRepo.Update(ctx, tx, solicitud); err != nil {
			return err
		}
		if err := is.inspeccionRepo.Update(ctx, tx, insp); err != nil {
			return err
		}

		actor := inspectorID
		_, err = is.auditoriaRepo.Create(ctx, tx, &types.Auditoria{
			SolicitudID:    solicitud.ID,
			UsuarioID:      &actor,
			Accion:         "registrar_inspeccion",
			EstadoAnterior: string(anterior),
			EstadoNuevo:    string(solicitud.Estado),
			Detalle:        fmt.Sprintf("resultado %s (%d/5 ítems conformes)", resultado, checklist.Aprobados()),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	switch insp.Resultado {
	case domain.ResultadoAprobado:
		is.notificaciones.Notificar(ctx, solicitud.UsuarioID, &solicitud.ID, "itse_aprobada",
			"Inspección ITSE aprobada",
			fmt.Sprintf("Tu local aprobó la inspección del expediente %s.", solicitud.NumeroExpediente))
	case domain.ResultadoObservado:
		is.notificaciones.Notificar(ctx, solicitud.UsuarioID, &solicitud.ID, "itse_observada",
			"Inspección ITSE con observaciones",
			"Tu local tiene observaciones que subsanar antes de una nueva visita.")
	case domain.ResultadoRechazado:
		is.notificaciones.Notificar(ctx, solicitud.UsuarioID, &solicitud.ID, "itse_rechazada",
			"Inspección ITSE rechazada",
			fmt.Sprintf("Tu local no aprobó la inspección; el expediente %s fue rechazado.", solicitud.NumeroExpediente))
	}
	return insp, nil
}

func (is *inspeccionService) Detalle(ctx context.Context, inspeccionID uint) (*types.Inspeccion, error) {
	return is.inspeccionRepo.GetByID(ctx, nil, inspeccionID)
}

func (is *inspeccionService) ListarPorSolicitud(ctx context.Context, solicitudID uint) ([]*types.Inspeccion, error) {
	return is.inspeccionRepo.ListBySolicitud(ctx, nil, solicitudID)
}

func (is *inspeccionService) AgendaDelInspector(ctx context.Context, inspectorID uint, estado string) ([]*types.Inspeccion, error) {
	return is.inspeccionRepo.ListByInspector(ctx, nil, inspectorID, estado)
}
