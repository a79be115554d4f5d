package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

var reLicenciaTest = regexp.MustCompile(`^LIC-\d{8}-\d{6}$`)

func TestFlujoRevisionHastaLicencia(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)

	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Bodega")

	s, err := ss.IniciarRevision(ctx, solicitud.ID, funcionario.ID)
	if err != nil {
		t.Fatalf("IniciarRevision: %v", err)
	}
	if s.Estado != domain.EstadoEnRevision {
		t.Fatalf("estado = %s", s.Estado)
	}

	s, err = ss.Aprobar(ctx, solicitud.ID, funcionario.ID, "documentación conforme")
	if err != nil {
		t.Fatalf("Aprobar: %v", err)
	}
	if s.Estado != domain.EstadoAprobado {
		t.Fatalf("estado = %s", s.Estado)
	}

	s, err = ss.EmitirLicencia(ctx, solicitud.ID, funcionario.ID)
	if err != nil {
		t.Fatalf("EmitirLicencia: %v", err)
	}
	if !reLicenciaTest.MatchString(s.NumeroLicencia) {
		t.Fatalf("licencia %q no cumple el formato", s.NumeroLicencia)
	}
	if len(s.CodigoVerificador) != 8 {
		t.Fatalf("código verificador %q", s.CodigoVerificador)
	}
	if s.FechaEmision == nil || s.FechaVencimiento == nil || s.ProximaInspeccion == nil {
		t.Fatalf("fechas de emisión sin llenar: %+v", s)
	}
	if !s.FechaVencimiento.Equal(s.FechaEmision.AddDate(2, 0, 0)) {
		t.Fatalf("vencimiento %v no es emisión + 2 años (%v)", s.FechaVencimiento, s.FechaEmision)
	}

	// Verificación pública de la licencia emitida.
	v, err := ss.VerificarLicencia(ctx, s.NumeroLicencia, s.CodigoVerificador)
	if err != nil {
		t.Fatalf("VerificarLicencia: %v", err)
	}
	if v.ID != s.ID {
		t.Fatalf("verificación devolvió otra solicitud")
	}
	if _, err := ss.VerificarLicencia(ctx, s.NumeroLicencia, "XXXXXXXX"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("código errado debería ser not found, obtuve %v", err)
	}

	s, err = ss.Finalizar(ctx, solicitud.ID, funcionario.ID)
	if err != nil {
		t.Fatalf("Finalizar: %v", err)
	}
	if s.Estado != domain.EstadoFinalizado {
		t.Fatalf("estado = %s", s.Estado)
	}

	historial, err := ss.Historial(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Historial: %v", err)
	}
	// presentar, pagar, iniciar_revision, aprobar, emitir_licencia, finalizar
	if len(historial) != 6 {
		t.Fatalf("auditorías = %d, esperaba 6", len(historial))
	}
	for i, a := range historial[1:] {
		if a.EstadoAnterior != historial[i].EstadoNuevo {
			t.Fatalf("historial discontinuo en %d: %s -> %s", i, historial[i].EstadoNuevo, a.EstadoAnterior)
		}
	}
}

func TestTransicionIlegalEsConflict(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Bodega")

	// Emitir sin aprobar.
	if _, err := ss.EmitirLicencia(ctx, solicitud.ID, funcionario.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict, obtuve %v", err)
	}
	// Aprobar sin revisar.
	if _, err := ss.Aprobar(ctx, solicitud.ID, funcionario.ID, ""); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict, obtuve %v", err)
	}

	// El estado no debe haberse movido.
	actual, err := ss.Detalle(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Detalle: %v", err)
	}
	if actual.Estado != domain.EstadoPagado {
		t.Fatalf("estado tras intentos ilegales = %s", actual.Estado)
	}
}

func TestRechazoExigeMotivo(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Bodega")

	if _, err := ss.Rechazar(ctx, solicitud.ID, funcionario.ID, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("esperaba validación, obtuve %v", err)
	}

	s, err := ss.Rechazar(ctx, solicitud.ID, funcionario.ID, "zonificación incompatible")
	if err != nil {
		t.Fatalf("Rechazar: %v", err)
	}
	if s.Estado != domain.EstadoRechazado {
		t.Fatalf("estado = %s", s.Estado)
	}

	// Un expediente rechazado es terminal.
	if _, err := ss.IniciarRevision(ctx, solicitud.ID, funcionario.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict sobre terminal, obtuve %v", err)
	}
}

func TestCancelarSoloElDueno(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	otro := e.crearUsuario(t, types.RolCiudadano)
	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Bodega")

	if _, err := ss.Cancelar(ctx, solicitud.ID, otro.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found para otro usuario, obtuve %v", err)
	}

	s, err := ss.Cancelar(ctx, solicitud.ID, ciudadano.ID)
	if err != nil {
		t.Fatalf("Cancelar: %v", err)
	}
	if s.Estado != domain.EstadoCancelado {
		t.Fatalf("estado = %s", s.Estado)
	}
}

func TestDetalleDelUsuarioOcultaAjenos(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	otro := e.crearUsuario(t, types.RolCiudadano)
	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Restaurante")

	if _, err := ss.DetalleDelUsuario(ctx, solicitud.ID, otro.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found, obtuve %v", err)
	}
	if _, err := ss.DetalleDelUsuario(ctx, solicitud.ID, ciudadano.ID); err != nil {
		t.Fatalf("dueño: %v", err)
	}
}
