package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type DocumentoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, d *types.Documento) (*types.Documento, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Documento, error)
	ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Documento, error)
	Update(ctx context.Context, tx *gorm.DB, d *types.Documento) error
}

type documentoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentoRepo(db *gorm.DB, baseLog *logger.Logger) DocumentoRepo {
	return &documentoRepo{db: db, log: baseLog.With("repo", "DocumentoRepo")}
}

func (dr *documentoRepo) Create(ctx context.Context, tx *gorm.DB, d *types.Documento) (*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (dr *documentoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var d types.Documento
	if err := transaction.WithContext(ctx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("documento no encontrado")
		}
		return nil, err
	}
	return &d, nil
}

func (dr *documentoRepo) ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Documento
	err := transaction.WithContext(ctx).
		Where("solicitud_id = ?", solicitudID).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentoRepo) Update(ctx context.Context, tx *gorm.DB, d *types.Documento) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Save(d).Error
}
