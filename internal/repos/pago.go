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

type PagoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, p *types.Pago) (*types.Pago, error)
	GetByCodigo(ctx context.Context, tx *gorm.DB, codigoPago string) (*types.Pago, error)
	ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Pago, error)
	SumCompletadosEntre(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (float64, error)
	Update(ctx context.Context, tx *gorm.DB, p *types.Pago) error
}

type pagoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPagoRepo(db *gorm.DB, baseLog *logger.Logger) PagoRepo {
	return &pagoRepo{db: db, log: baseLog.With("repo", "PagoRepo")}
}

func (pr *pagoRepo) Create(ctx context.Context, tx *gorm.DB, p *types.Pago) (*types.Pago, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *pagoRepo) GetByCodigo(ctx context.Context, tx *gorm.DB, codigoPago string) (*types.Pago, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var p types.Pago
	err := transaction.WithContext(ctx).
		Where("codigo_pago = ?", codigoPago).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("pago no encontrado")
		}
		return nil, err
	}
	return &p, nil
}

func (pr *pagoRepo) ListBySolicitud(ctx context.Context, tx *gorm.DB, solicitudID uint) ([]*types.Pago, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Pago
	err := transaction.WithContext(ctx).
		Where("solicitud_id = ?", solicitudID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pagoRepo) SumCompletadosEntre(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var total float64
	err := transaction.WithContext(ctx).
		Model(&types.Pago{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("estado = ?", types.PagoCompletado).
		Where("created_at >= ? AND created_at < ?", desde, hasta).
		Scan(&total).Error
	return total, err
}

func (pr *pagoRepo) Update(ctx context.Context, tx *gorm.DB, p *types.Pago) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(p).Error
}
