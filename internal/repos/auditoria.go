package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type AuditoriaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, a *types.Auditoria) (*types.Auditoria, error)
	ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Auditoria, error)
}

type auditoriaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditoriaRepo(db *gorm.DB, baseLog *logger.Logger) AuditoriaRepo {
	return &auditoriaRepo{db: db, log: baseLog.With("repo", "AuditoriaRepo")}
}

func (ar *auditoriaRepo) Create(ctx context.Context, tx *gorm.DB, a *types.Auditoria) (*types.Auditoria, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (ar *auditoriaRepo) ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Auditoria, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Auditoria
	err := transaction.WithContext(ctx).
		Where("solicitud_id = ?", solicitudID).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
