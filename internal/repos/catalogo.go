package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// CatalogoRepo covers the three master tables behind the wizard and the
// admin screens. Deactivation is soft: rows flip is_active instead of being
// removed, so historical applications keep their references.
type CatalogoRepo interface {
	CreateRubro(ctx context.Context, tx *gorm.DB, r *types.Rubro) (*types.Rubro, error)
	GetRubro(ctx context.Context, tx *gorm.DB, id uint) (*types.Rubro, error)
	GetRubroPorNombre(ctx context.Context, tx *gorm.DB, nombre string) (*types.Rubro, error)
	ListRubros(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.Rubro, error)
	UpdateRubro(ctx context.Context, tx *gorm.DB, r *types.Rubro) error

	ListTarifas(ctx context.Context, tx *gorm.DB) ([]*types.Tarifa, error)
	GetTarifaPorNivel(ctx context.Context, tx *gorm.DB, nivel string) (*types.Tarifa, error)
	UpsertTarifa(ctx context.Context, tx *gorm.DB, t *types.Tarifa) (*types.Tarifa, error)

	CreateZona(ctx context.Context, tx *gorm.DB, z *types.Zona) (*types.Zona, error)
	ListZonas(ctx context.Context, tx *gorm.DB) ([]*types.Zona, error)
	GetZonaPorCodigo(ctx context.Context, tx *gorm.DB, codigo string) (*types.Zona, error)
}

type catalogoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogoRepo(db *gorm.DB, baseLog *logger.Logger) CatalogoRepo {
	return &catalogoRepo{db: db, log: baseLog.With("repo", "CatalogoRepo")}
}

func (cr *catalogoRepo) CreateRubro(ctx context.Context, tx *gorm.DB, r *types.Rubro) (*types.Rubro, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (cr *catalogoRepo) GetRubro(ctx context.Context, tx *gorm.DB, id uint) (*types.Rubro, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var r types.Rubro
	if err := transaction.WithContext(ctx).First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("rubro no encontrado")
		}
		return nil, err
	}
	return &r, nil
}

func (cr *catalogoRepo) GetRubroPorNombre(ctx context.Context, tx *gorm.DB, nombre string) (*types.Rubro, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var r types.Rubro
	if err := transaction.WithContext(ctx).Where("nombre = ?", nombre).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("rubro no encontrado")
		}
		return nil, err
	}
	return &r, nil
}

func (cr *catalogoRepo) ListRubros(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.Rubro, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Rubro{})
	if soloActivos {
		q = q.Where("is_active = ?", true)
	}
	var results []*types.Rubro
	if err := q.Order("nombre ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *catalogoRepo) UpdateRubro(ctx context.Context, tx *gorm.DB, r *types.Rubro) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(r).Error
}

func (cr *catalogoRepo) ListTarifas(ctx context.Context, tx *gorm.DB) ([]*types.Tarifa, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Tarifa
	err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("monto ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *catalogoRepo) GetTarifaPorNivel(ctx context.Context, tx *gorm.DB, nivel string) (*types.Tarifa, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var t types.Tarifa
	err := transaction.WithContext(ctx).
		Where("nivel_riesgo = ? AND is_active = ?", nivel, true).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("tarifa no encontrada")
		}
		return nil, err
	}
	return &t, nil
}

func (cr *catalogoRepo) UpsertTarifa(ctx context.Context, tx *gorm.DB, t *types.Tarifa) (*types.Tarifa, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	existente, err := cr.GetTarifaPorNivel(ctx, transaction, t.NivelRiesgo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if err := transaction.WithContext(ctx).Create(t).Error; err != nil {
				return nil, err
			}
			return t, nil
		}
		return nil, err
	}
	existente.Monto = t.Monto
	existente.Descripcion = t.Descripcion
	existente.VigenteDesde = t.VigenteDesde
	existente.VigenteHasta = t.VigenteHasta
	if err := transaction.WithContext(ctx).Save(existente).Error; err != nil {
		return nil, err
	}
	return existente, nil
}

func (cr *catalogoRepo) CreateZona(ctx context.Context, tx *gorm.DB, z *types.Zona) (*types.Zona, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(z).Error; err != nil {
		return nil, err
	}
	return z, nil
}

func (cr *catalogoRepo) ListZonas(ctx context.Context, tx *gorm.DB) ([]*types.Zona, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Zona
	err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("codigo ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *catalogoRepo) GetZonaPorCodigo(ctx context.Context, tx *gorm.DB, codigo string) (*types.Zona, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var z types.Zona
	if err := transaction.WithContext(ctx).Where("codigo = ?", codigo).First(&z).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError("zona no encontrada")
		}
		return nil, err
	}
	return &z, nil
}
