package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/classify"
	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// DocumentoService handles the annex files attached to an application. Only
// metadata lives here; the binary goes to whatever storage serves RutaArchivo.
type DocumentoService interface {
	Subir(ctx context.Context, solicitudID, usuarioID uint, d *types.Documento) (*types.Documento, error)
	Listar(ctx context.Context, solicitudID, usuarioID uint) ([]*types.Documento, error)
	ListarParaRevision(ctx context.Context, solicitudID uint) ([]*types.Documento, error)
	Validar(ctx context.Context, documentoID, funcionarioID uint, validado bool, observaciones string) (*types.Documento, error)
}

type documentoService struct {
	db            *gorm.DB
	log           *logger.Logger
	documentoRepo repos.DocumentoRepo
	solicitudRepo repos.SolicitudRepo
	auditoriaRepo repos.AuditoriaRepo
}

func NewDocumentoService(
	db *gorm.DB,
	log *logger.Logger,
	documentoRepo repos.DocumentoRepo,
	solicitudRepo repos.SolicitudRepo,
	auditoriaRepo repos.AuditoriaRepo,
) DocumentoService {
	return &documentoService{
		db:            db,
		log:           log.With("service", "DocumentoService"),
		documentoRepo: documentoRepo,
		solicitudRepo: solicitudRepo,
		auditoriaRepo: auditoriaRepo,
	}
}

func (ds *documentoService) Subir(ctx context.Context, solicitudID, usuarioID uint, d *types.Documento) (*types.Documento, error) {
	d.Tipo = strings.TrimSpace(d.Tipo)
	if d.Tipo == "" {
		return nil, domain.ValidationError("el tipo de documento es obligatorio")
	}

	s, err := ds.solicitudRepo.GetByID(ctx, nil, solicitudID)
	if err != nil {
		return nil, err
	}
	if s.UsuarioID != usuarioID {
		return nil, domain.NotFoundError("solicitud no encontrada")
	}
	if s.Estado.EsTerminal() {
		return nil, domain.ConflictError("la solicitud ya está cerrada")
	}

	if !tipoAnexoValido(s.NivelRiesgo, d.Tipo) {
		return nil, domain.ValidationError("tipo de anexo no requerido para este expediente: " + d.Tipo)
	}

	d.SolicitudID = s.ID
	d.EstaValidado = false
	return ds.documentoRepo.Create(ctx, nil, d)
}

func (ds *documentoService) Listar(ctx context.Context, solicitudID, usuarioID uint) ([]*types.Documento, error) {
	s, err := ds.solicitudRepo.GetByID(ctx, nil, solicitudID)
	if err != nil {
		return nil, err
	}
	if s.UsuarioID != usuarioID {
		return nil, domain.NotFoundError("solicitud no encontrada")
	}
	return ds.documentoRepo.ListBySolicitud(ctx, nil, solicitudID)
}

func (ds *documentoService) ListarParaRevision(ctx context.Context, solicitudID uint) ([]*types.Documento, error) {
	if _, err := ds.solicitudRepo.GetByID(ctx, nil, solicitudID); err != nil {
		return nil, err
	}
	return ds.documentoRepo.ListBySolicitud(ctx, nil, solicitudID)
}

func (ds *documentoService) Validar(ctx context.Context, documentoID, funcionarioID uint, validado bool, observaciones string) (*types.Documento, error) {
	var d *types.Documento
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		d, err = ds.documentoRepo.GetByID(ctx, tx, documentoID)
		if err != nil {
			return err
		}
		d.EstaValidado = validado
		d.Observaciones = observaciones
		if err := ds.documentoRepo.Update(ctx, tx, d); err != nil {
			return err
		}

		accion := "validar_documento"
		if !validado {
			accion = "observar_documento"
		}
		actor := funcionarioID
		_, err = ds.auditoriaRepo.Create(ctx, tx, &types.Auditoria{
			SolicitudID: d.SolicitudID,
			UsuarioID:   &actor,
			Accion:      accion,
			Detalle:     d.Tipo + ": " + observaciones,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func tipoAnexoValido(nivelRiesgo, tipo string) bool {
	for _, a := range classify.AnexosRequeridos(classify.NivelRiesgo(nivelRiesgo)) {
		if a.Tipo == tipo {
			return true
		}
	}
	return false
}
