package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/classify"
	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
	"github.com/Yamir213/sistema-licencias-ica/internal/zoning"
)

// CatalogoService administers the master tables and seeds them from the
// built-in ordinance tables on first boot.
type CatalogoService interface {
	ListarRubros(ctx context.Context, soloActivos bool) ([]*types.Rubro, error)
	CrearRubro(ctx context.Context, r *types.Rubro) (*types.Rubro, error)
	ActualizarRubro(ctx context.Context, r *types.Rubro) error
	DesactivarRubro(ctx context.Context, id uint) error

	ListarTarifas(ctx context.Context) ([]*types.Tarifa, error)
	ActualizarTarifa(ctx context.Context, nivel string, monto float64, descripcion string) (*types.Tarifa, error)

	ListarZonas(ctx context.Context) ([]*types.Zona, error)
	CrearZona(ctx context.Context, z *types.Zona) (*types.Zona, error)

	Seed(ctx context.Context) error
}

type catalogoService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.CatalogoRepo
}

func NewCatalogoService(db *gorm.DB, log *logger.Logger, repo repos.CatalogoRepo) CatalogoService {
	return &catalogoService{
		db:   db,
		log:  log.With("service", "CatalogoService"),
		repo: repo,
	}
}

func (cs *catalogoService) ListarRubros(ctx context.Context, soloActivos bool) ([]*types.Rubro, error) {
	return cs.repo.ListRubros(ctx, nil, soloActivos)
}

func (cs *catalogoService) CrearRubro(ctx context.Context, r *types.Rubro) (*types.Rubro, error) {
	r.Nombre = strings.TrimSpace(r.Nombre)
	if r.Nombre == "" {
		return nil, domain.ValidationError("el nombre del rubro es obligatorio")
	}
	if r.NivelRiesgo == "" {
		c := classify.Clasificar(r.Nombre)
		r.NivelRiesgo = string(c.Nivel)
		r.RequiereITSEPrevia = c.RequiereITSEPrevia
	}
	r.IsActive = true
	return cs.repo.CreateRubro(ctx, nil, r)
}

func (cs *catalogoService) ActualizarRubro(ctx context.Context, r *types.Rubro) error {
	if _, err := cs.repo.GetRubro(ctx, nil, r.ID); err != nil {
		return err
	}
	return cs.repo.UpdateRubro(ctx, nil, r)
}

func (cs *catalogoService) DesactivarRubro(ctx context.Context, id uint) error {
	r, err := cs.repo.GetRubro(ctx, nil, id)
	if err != nil {
		return err
	}
	r.IsActive = false
	return cs.repo.UpdateRubro(ctx, nil, r)
}

func (cs *catalogoService) ListarTarifas(ctx context.Context) ([]*types.Tarifa, error) {
	return cs.repo.ListTarifas(ctx, nil)
}

func (cs *catalogoService) ActualizarTarifa(ctx context.Context, nivel string, monto float64, descripcion string) (*types.Tarifa, error) {
	if monto <= 0 {
		return nil, domain.ValidationError("el monto debe ser positivo")
	}
	if _, ok := classify.Tarifas[classify.NivelRiesgo(nivel)]; !ok {
		return nil, domain.ValidationError("nivel de riesgo desconocido: " + nivel)
	}
	return cs.repo.UpsertTarifa(ctx, nil, &types.Tarifa{
		NivelRiesgo:  nivel,
		Monto:        monto,
		Descripcion:  descripcion,
		VigenteDesde: time.Now(),
		IsActive:     true,
	})
}

func (cs *catalogoService) ListarZonas(ctx context.Context) ([]*types.Zona, error) {
	return cs.repo.ListZonas(ctx, nil)
}

func (cs *catalogoService) CrearZona(ctx context.Context, z *types.Zona) (*types.Zona, error) {
	z.Codigo = strings.ToUpper(strings.TrimSpace(z.Codigo))
	z.Nombre = strings.TrimSpace(z.Nombre)
	if z.Codigo == "" || z.Nombre == "" {
		return nil, domain.ValidationError("código y nombre de la zona son obligatorios")
	}
	if _, err := cs.repo.GetZonaPorCodigo(ctx, nil, z.Codigo); err == nil {
		return nil, domain.ConflictError("ya existe una zona con el código " + z.Codigo)
	}
	z.IsActive = true
	return cs.repo.CreateZona(ctx, nil, z)
}

// Seed loads the ordinance defaults once. Existing rows win; re-running the
// seed never overwrites manual edits.
func (cs *catalogoService) Seed(ctx context.Context) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rubros, err := cs.repo.ListRubros(ctx, tx, false)
		if err != nil {
			return err
		}
		if len(rubros) == 0 {
			for i, nombre := range classify.NombresRubros() {
				c := classify.Clasificar(nombre)
				_, err := cs.repo.CreateRubro(ctx, tx, &types.Rubro{
					Codigo:             codigoRubro(i + 1),
					Nombre:             nombre,
					NivelRiesgo:        string(c.Nivel),
					RequiereITSEPrevia: c.RequiereITSEPrevia,
					IsActive:           true,
				})
				if err != nil {
					return err
				}
			}
			cs.log.Info("Catálogo de rubros sembrado")
		}

		tarifas, err := cs.repo.ListTarifas(ctx, tx)
		if err != nil {
			return err
		}
		if len(tarifas) == 0 {
			for nivel, monto := range classify.Tarifas {
				_, err := cs.repo.UpsertTarifa(ctx, tx, &types.Tarifa{
					NivelRiesgo:  string(nivel),
					Monto:        monto,
					Descripcion:  "Tasa por licencia de funcionamiento, riesgo " + string(nivel),
					VigenteDesde: time.Now(),
					IsActive:     true,
				})
				if err != nil {
					return err
				}
			}
			cs.log.Info("Tarifas sembradas")
		}

		zonas, err := cs.repo.ListZonas(ctx, tx)
		if err != nil {
			return err
		}
		if len(zonas) == 0 {
			defaults := []types.Zona{
				{Codigo: zoning.ZonaResidencial, Nombre: "Zona Residencial", IsActive: true},
				{Codigo: zoning.ZonaComercial, Nombre: "Zona Comercial", IsActive: true},
				{Codigo: zoning.ZonaIndustrial, Nombre: "Zona Industrial", IsActive: true},
				{Codigo: zoning.ZonaTuristica, Nombre: "Zona Turística", IsActive: true},
			}
			for i := range defaults {
				if _, err := cs.repo.CreateZona(ctx, tx, &defaults[i]); err != nil {
					return err
				}
			}
			cs.log.Info("Zonas sembradas")
		}
		return nil
	})
}

func codigoRubro(n int) string {
	return fmt.Sprintf("R%03d", n)
}
