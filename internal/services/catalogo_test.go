package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

func TestSeedEsIdempotente(t *testing.T) {
	e := nuevoEntorno(t)
	cs := NewCatalogoService(e.db, e.log, e.catalogoRepo)
	ctx := context.Background()

	if err := cs.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	rubros, err := cs.ListarRubros(ctx, true)
	if err != nil {
		t.Fatalf("ListarRubros: %v", err)
	}
	if len(rubros) == 0 {
		t.Fatalf("seed no creó rubros")
	}
	tarifas, err := cs.ListarTarifas(ctx)
	if err != nil || len(tarifas) != 4 {
		t.Fatalf("tarifas = %d, err=%v", len(tarifas), err)
	}
	zonas, err := cs.ListarZonas(ctx)
	if err != nil || len(zonas) != 4 {
		t.Fatalf("zonas = %d, err=%v", len(zonas), err)
	}

	// Una segunda pasada no duplica nada.
	if err := cs.Seed(ctx); err != nil {
		t.Fatalf("segundo Seed: %v", err)
	}
	rubros2, _ := cs.ListarRubros(ctx, true)
	if len(rubros2) != len(rubros) {
		t.Fatalf("el seed duplicó rubros: %d -> %d", len(rubros), len(rubros2))
	}
}

func TestActualizarTarifa(t *testing.T) {
	e := nuevoEntorno(t)
	cs := NewCatalogoService(e.db, e.log, e.catalogoRepo)
	ctx := context.Background()

	if err := cs.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	tar, err := cs.ActualizarTarifa(ctx, "bajo", 155.50, "ajuste anual")
	if err != nil {
		t.Fatalf("ActualizarTarifa: %v", err)
	}
	if tar.Monto != 155.50 {
		t.Fatalf("monto = %v", tar.Monto)
	}

	if _, err := cs.ActualizarTarifa(ctx, "inexistente", 100, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("nivel desconocido: %v", err)
	}
	if _, err := cs.ActualizarTarifa(ctx, "bajo", -5, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("monto negativo: %v", err)
	}
}

func TestCrearZona(t *testing.T) {
	e := nuevoEntorno(t)
	cs := NewCatalogoService(e.db, e.log, e.catalogoRepo)
	ctx := context.Background()

	z, err := cs.CrearZona(ctx, &types.Zona{Codigo: " ze ", Nombre: "Zona de Expansión"})
	if err != nil {
		t.Fatalf("CrearZona: %v", err)
	}
	if z.Codigo != "ZE" {
		t.Fatalf("código sin normalizar: %q", z.Codigo)
	}
	if !z.IsActive {
		t.Fatalf("la zona nueva debería quedar activa")
	}

	if _, err := cs.CrearZona(ctx, &types.Zona{Codigo: "ZE", Nombre: "Duplicada"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict por código repetido, obtuve %v", err)
	}
	if _, err := cs.CrearZona(ctx, &types.Zona{Codigo: "", Nombre: "Sin código"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("esperaba validación, obtuve %v", err)
	}
}

func TestDesactivarRubro(t *testing.T) {
	e := nuevoEntorno(t)
	cs := NewCatalogoService(e.db, e.log, e.catalogoRepo)
	ctx := context.Background()

	r, err := cs.CrearRubro(ctx, &types.Rubro{Codigo: "R900", Nombre: "Juguería"})
	if err != nil {
		t.Fatalf("CrearRubro: %v", err)
	}
	if r.NivelRiesgo == "" {
		t.Fatalf("el rubro debería clasificarse al crearse")
	}

	if err := cs.DesactivarRubro(ctx, r.ID); err != nil {
		t.Fatalf("DesactivarRubro: %v", err)
	}
	activos, err := cs.ListarRubros(ctx, true)
	if err != nil {
		t.Fatalf("ListarRubros: %v", err)
	}
	for _, a := range activos {
		if a.ID == r.ID {
			t.Fatalf("el rubro desactivado sigue listado como activo")
		}
	}
}
