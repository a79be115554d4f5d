package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type InspeccionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, i *types.Inspeccion) (*types.Inspeccion, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Inspeccion, error)
	ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Inspeccion, error)
	ListByInspector(ctx context.Context, tx *gorm.DB, inspectorID uint, estado string) ([]*types.Inspeccion, error)
	ListProximas(ctx context.Context, tx *gorm.DB, desde time.Time, limite int) ([]*types.Inspeccion, error)
	Update(ctx context.Context, tx *gorm.DB, i *types.Inspeccion) error
}

type inspeccionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspeccionRepo(db *gorm.DB, baseLog *logger.Logger) InspeccionRepo {
	return &inspeccionRepo{db: db, log: baseLog.With("repo", "InspeccionRepo")}
}

func (ir *inspeccionRepo) Create(ctx context.Context, tx *gorm.DB, i *types.Inspeccion) (*types.Inspeccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(i).Error; err != nil {
		return nil, err
	}
	return i, nil
}

func (ir *inspeccionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Inspeccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var i types.Inspeccion
	err := transaction.WithContext(ctx).
		Preload("Solicitud").
		First(&i, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("inspección no encontrada")
		}
		return nil, err
	}
	return &i, nil
}

func (ir *inspeccionRepo) ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Inspeccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Inspeccion
	err := transaction.WithContext(ctx).
		Where("solicitud_id = ?", solicitudID).
		Order("fecha_programada DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inspeccionRepo) ListByInspector(ctx context.Context, tx *gorm.DB, inspectorID uint, estado string) ([]*types.Inspeccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	q := transaction.WithContext(ctx).
		Preload("Solicitud").
		Where("inspector_id = ?", inspectorID)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var results []*types.Inspeccion
	if err := q.Order("fecha_programada ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inspeccionRepo) ListProximas(ctx context.Context, tx *gorm.DB, desde time.Time, limite int) ([]*types.Inspeccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Inspeccion
	err := transaction.WithContext(ctx).
		Preload("Solicitud").
		Where("estado = ?", domain.InspeccionProgramada).
		Where("fecha_programada >= ?", desde).
		Order("fecha_programada ASC").
		Limit(limite).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inspeccionRepo) Update(ctx context.Context, tx *gorm.DB, i *types.Inspeccion) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).Save(i).Error
}
