package repos

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// TamanoPagina is the fixed page size of the staff listings.
const TamanoPagina = 20

// FiltroSolicitudes narrows the staff listing. Zero values mean "no filter".
// Riesgo admits the synthetic bucket "alto" which covers alto and muy_alto.
type FiltroSolicitudes struct {
	Estado   string
	Riesgo   string
	Distrito string
	Buscar   string
	Pagina   int
}

// ConteoPorClave is one bucket of a grouped count.
type ConteoPorClave struct {
	Clave  string `gorm:"column:clave"`
	Numero int64  `gorm:"column:numero"`
}

type SolicitudRepo interface {
	Create(ctx context.Context, tx *gorm.DB, s *types.Solicitud) (*types.Solicitud, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Solicitud, error)
	GetByExpediente(ctx context.Context, tx *gorm.DB, numero string) (*types.Solicitud, error)
	GetByLicencia(ctx context.Context, tx *gorm.DB, numeroLicencia string) (*types.Solicitud, error)
	ListByUsuario(ctx context.Context, tx *gorm.DB, usuarioID uint) ([]*types.Solicitud, error)
	List(ctx context.Context, tx *gorm.DB, filtro FiltroSolicitudes) ([]*types.Solicitud, int64, error)
	ListRecientes(ctx context.Context, tx *gorm.DB, limite int) ([]*types.Solicitud, error)
	Update(ctx context.Context, tx *gorm.DB, s *types.Solicitud) error
	CountPorEstado(ctx context.Context, tx *gorm.DB) ([]ConteoPorClave, error)
	CountPorRiesgo(ctx context.Context, tx *gorm.DB) ([]ConteoPorClave, error)
	CountCreadasEntre(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (int64, error)
	CountEmitidasEntre(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (int64, error)
}

type solicitudRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSolicitudRepo(db *gorm.DB, baseLog *logger.Logger) SolicitudRepo {
	return &solicitudRepo{db: db, log: baseLog.With("repo", "SolicitudRepo")}
}

func (sr *solicitudRepo) Create(ctx context.Context, tx *gorm.DB, s *types.Solicitud) (*types.Solicitud, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (sr *solicitudRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Solicitud, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var s types.Solicitud
	err := transaction.WithContext(ctx).
		Preload("Rubro").
		Preload("Pagos").
		Preload("Documentos").
		Preload("Inspecciones").
		First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("solicitud no encontrada")
		}
		return nil, err
	}
	return &s, nil
}

func (sr *solicitudRepo) GetByExpediente(ctx context.Context, tx *gorm.DB, numero string) (*types.Solicitud, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var s types.Solicitud
	err := transaction.WithContext(ctx).
		Preload("Rubro").
		Where("numero_expediente = ?", numero).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("expediente no encontrado")
		}
		return nil, err
	}
	return &s, nil
}

func (sr *solicitudRepo) GetByLicencia(ctx context.Context, tx *gorm.DB, numeroLicencia string) (*types.Solicitud, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var s types.Solicitud
	err := transaction.WithContext(ctx).
		Preload("Rubro").
		Where("numero_licencia = ?", numeroLicencia).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("licencia no encontrada")
		}
		return nil, err
	}
	return &s, nil
}

func (sr *solicitudRepo) ListByUsuario(ctx context.Context, tx *gorm.DB, usuarioID uint) ([]*types.Solicitud, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Solicitud
	err := transaction.WithContext(ctx).
		Preload("Rubro").
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *solicitudRepo) List(ctx context.Context, tx *gorm.DB, filtro FiltroSolicitudes) ([]*types.Solicitud, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Solicitud{})
	if filtro.Estado != "" {
		q = q.Where("estado = ?", filtro.Estado)
	}
	switch filtro.Riesgo {
	case "":
	case "alto":
		// El filtro de riesgo alto agrupa los dos niveles superiores.
		q = q.Where("nivel_riesgo IN ?", []string{"alto", "muy_alto"})
	default:
		q = q.Where("nivel_riesgo = ?", filtro.Riesgo)
	}
	if filtro.Distrito != "" {
		q = q.Where("distrito = ?", filtro.Distrito)
	}
	if buscar := strings.TrimSpace(filtro.Buscar); buscar != "" {
		patron := "%" + buscar + "%"
		q = q.Where("numero_expediente LIKE ? OR nombre_negocio LIKE ?", patron, patron)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pagina := filtro.Pagina
	if pagina < 1 {
		pagina = 1
	}

	var results []*types.Solicitud
	err := q.Preload("Rubro").
		Order("created_at DESC").
		Offset((pagina - 1) * TamanoPagina).
		Limit(TamanoPagina).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (sr *solicitudRepo) ListRecientes(ctx context.Context, tx *gorm.DB, limite int) ([]*types.Solicitud, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Solicitud
	err := transaction.WithContext(ctx).
		Preload("Rubro").
		Order("created_at DESC").
		Limit(limite).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *solicitudRepo) Update(ctx context.Context, tx *gorm.DB, s *types.Solicitud) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Save(s).Error
}

func (sr *solicitudRepo) CountPorEstado(ctx context.Context, tx *gorm.DB) ([]ConteoPorClave, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []ConteoPorClave
	err := transaction.WithContext(ctx).
		Model(&types.Solicitud{}).
		Select("estado AS clave, COUNT(*) AS numero").
		Group("estado").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *solicitudRepo) CountPorRiesgo(ctx context.Context, tx *gorm.DB) ([]ConteoPorClave, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []ConteoPorClave
	err := transaction.WithContext(ctx).
		Model(&types.Solicitud{}).
		Select("nivel_riesgo AS clave, COUNT(*) AS numero").
		Group("nivel_riesgo").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *solicitudRepo) CountCreadasEntre(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Solicitud{}).
		Where("created_at >= ? AND created_at < ?", desde, hasta).
		Count(&count).Error
	return count, err
}

func (sr *solicitudRepo) CountEmitidasEntre(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Solicitud{}).
		Where("fecha_emision >= ? AND fecha_emision < ?", desde, hasta).
		Count(&count).Error
	return count, err
}
