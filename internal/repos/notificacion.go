package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type NotificacionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, n *types.Notificacion) (*types.Notificacion, error)
	ListByUsuario(ctx context.Context, tx *gorm.DB, usuarioID uint) ([]*types.Notificacion, error)
	Update(ctx context.Context, tx *gorm.DB, n *types.Notificacion) error
}

type notificacionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificacionRepo(db *gorm.DB, baseLog *logger.Logger) NotificacionRepo {
	return &notificacionRepo{db: db, log: baseLog.With("repo", "NotificacionRepo")}
}

func (nr *notificacionRepo) Create(ctx context.Context, tx *gorm.DB, n *types.Notificacion) (*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if err := transaction.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (nr *notificacionRepo) ListByUsuario(ctx context.Context, tx *gorm.DB, usuarioID uint) ([]*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var results []*types.Notificacion
	err := transaction.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Limit(100).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificacionRepo) Update(ctx context.Context, tx *gorm.DB, n *types.Notificacion) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Save(n).Error
}
