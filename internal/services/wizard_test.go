package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
	"github.com/Yamir213/sistema-licencias-ica/internal/wizard"
)

var reExpedienteTest = regexp.MustCompile(`^EXP-\d{8}-[0-9A-F]{8}$`)

func TestWizardFlujoCompleto(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}

	s, anexos, err := ws.Paso1Clasificar(ctx, s.ID, u.ID, "Restaurante")
	if err != nil {
		t.Fatalf("Paso1: %v", err)
	}
	if s.Clasificacion.NivelRiesgo != "medio" || s.Clasificacion.Monto != 150 {
		t.Fatalf("clasificación inesperada: %+v", s.Clasificacion)
	}
	if len(anexos) != 4 {
		t.Fatalf("anexos para riesgo medio = %d, esperaba 4", len(anexos))
	}

	s, err = ws.Paso2Negocio(ctx, s.ID, u.ID, wizard.DatosNegocio{
		NombreNegocio:    "La Olla de Barro",
		DireccionNegocio: "Calle Lima 456",
	})
	if err != nil {
		t.Fatalf("Paso2: %v", err)
	}
	if s.Negocio.Distrito != "Ica" {
		t.Fatalf("distrito por defecto = %q", s.Negocio.Distrito)
	}

	s, ev, err := ws.Paso3Zonificacion(ctx, s.ID, u.ID, aceptacionCompleta())
	if err != nil {
		t.Fatalf("Paso3: %v", err)
	}
	if ev.Zona == "" || len(ev.ZonasPermitidas) == 0 {
		t.Fatalf("evaluación vacía: %+v", ev)
	}

	s, solicitud, err := ws.Paso4Presentar(ctx, s.ID, u.ID)
	if err != nil {
		t.Fatalf("Paso4: %v", err)
	}
	if !reExpedienteTest.MatchString(solicitud.NumeroExpediente) {
		t.Fatalf("expediente %q no cumple el formato", solicitud.NumeroExpediente)
	}
	if solicitud.Estado != domain.EstadoPendientePago {
		t.Fatalf("estado tras presentar = %s", solicitud.Estado)
	}
	if s.SolicitudID != solicitud.ID {
		t.Fatalf("la sesión no guardó la solicitud")
	}

	s, pago, err := ws.Paso5Pagar(ctx, s.ID, u.ID, "yape")
	if err != nil {
		t.Fatalf("Paso5: %v", err)
	}
	if pago.Estado != types.PagoCompletado || pago.Monto != 150 {
		t.Fatalf("pago inesperado: %+v", pago)
	}

	_, final, err := ws.Paso6Resumen(ctx, s.ID, u.ID)
	if err != nil {
		t.Fatalf("Paso6: %v", err)
	}
	if final.Estado != domain.EstadoPagado {
		t.Fatalf("estado tras pagar = %s", final.Estado)
	}
	if final.MontoPago == nil || *final.MontoPago != 150 {
		t.Fatalf("monto denormalizado: %+v", final.MontoPago)
	}

	if err := ws.Limpiar(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("Limpiar: %v", err)
	}
	if _, err := ws.Obtener(ctx, s.ID, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found tras limpiar, obtuve %v", err)
	}
}

func TestWizardSesionAjenaEsNotFound(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	dueno := e.crearUsuario(t, types.RolCiudadano)
	otro := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, dueno.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	if _, err := ws.Obtener(ctx, s.ID, otro.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found para otro usuario, obtuve %v", err)
	}
	if _, _, err := ws.Paso1Clasificar(ctx, s.ID, otro.ID, "Bodega"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found en paso 1, obtuve %v", err)
	}
}

func TestWizardPasosFueraDeOrden(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}

	if _, err := ws.Paso2Negocio(ctx, s.ID, u.ID, wizard.DatosNegocio{
		NombreNegocio: "X", DireccionNegocio: "Y",
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("paso 2 sin clasificar: %v", err)
	}
	if _, _, err := ws.Paso3Zonificacion(ctx, s.ID, u.ID, aceptacionCompleta()); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("paso 3 sin datos: %v", err)
	}
	if _, _, err := ws.Paso4Presentar(ctx, s.ID, u.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("paso 4 incompleto: %v", err)
	}
	if _, _, err := ws.Paso5Pagar(ctx, s.ID, u.ID, "yape"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("paso 5 sin presentar: %v", err)
	}
}

func TestWizardPaso3ExigeAceptarCondiciones(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	if _, _, err := ws.Paso1Clasificar(ctx, s.ID, u.ID, "Bodega"); err != nil {
		t.Fatalf("Paso1: %v", err)
	}
	if _, err := ws.Paso2Negocio(ctx, s.ID, u.ID, wizard.DatosNegocio{
		NombreNegocio: "Bodega Lucero", DireccionNegocio: "Calle Bolívar 12",
	}); err != nil {
		t.Fatalf("Paso2: %v", err)
	}

	sinCondiciones := aceptacionCompleta()
	sinCondiciones.AceptaCondiciones = false
	if _, _, err := ws.Paso3Zonificacion(ctx, s.ID, u.ID, sinCondiciones); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("esperaba validación, obtuve %v", err)
	}

	s2, _, err := ws.Paso3Zonificacion(ctx, s.ID, u.ID, aceptacionCompleta())
	if err != nil {
		t.Fatalf("Paso3: %v", err)
	}
	if !s2.Zonificacion.Aceptacion.Declaracion3 {
		t.Fatalf("declaraciones sin registrar: %+v", s2.Zonificacion.Aceptacion)
	}
}

func TestWizardPresentarEsIdempotente(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	if _, _, err := ws.Paso1Clasificar(ctx, s.ID, u.ID, "Bodega"); err != nil {
		t.Fatalf("Paso1: %v", err)
	}
	if _, err := ws.Paso2Negocio(ctx, s.ID, u.ID, wizard.DatosNegocio{
		NombreNegocio: "Bodega San Martín", DireccionNegocio: "Jr. Ayacucho 89",
	}); err != nil {
		t.Fatalf("Paso2: %v", err)
	}
	if _, _, err := ws.Paso3Zonificacion(ctx, s.ID, u.ID, aceptacionCompleta()); err != nil {
		t.Fatalf("Paso3: %v", err)
	}

	_, primera, err := ws.Paso4Presentar(ctx, s.ID, u.ID)
	if err != nil {
		t.Fatalf("primer Paso4: %v", err)
	}
	_, segunda, err := ws.Paso4Presentar(ctx, s.ID, u.ID)
	if err != nil {
		t.Fatalf("segundo Paso4: %v", err)
	}
	if primera.ID != segunda.ID {
		t.Fatalf("se crearon dos solicitudes: %d y %d", primera.ID, segunda.ID)
	}
}

func TestWizardDobleSubmitConVersionViejaPierde(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}

	// Dos peticiones leen la misma versión; la que escribe después pierde.
	copia, err := e.store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, _, err := ws.Paso1Clasificar(ctx, s.ID, u.ID, "Bodega"); err != nil {
		t.Fatalf("Paso1: %v", err)
	}
	copia.PasoActual = 2
	if err := e.store.CompareAndSwap(ctx, copia, 0); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict, obtuve %v", err)
	}
}

func TestWizardPagoDobleEsConflict(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	if _, _, err := ws.Paso1Clasificar(ctx, s.ID, u.ID, "Bodega"); err != nil {
		t.Fatalf("Paso1: %v", err)
	}
	if _, err := ws.Paso2Negocio(ctx, s.ID, u.ID, wizard.DatosNegocio{
		NombreNegocio: "Bodega Central", DireccionNegocio: "Av. Grau 10",
	}); err != nil {
		t.Fatalf("Paso2: %v", err)
	}
	if _, _, err := ws.Paso3Zonificacion(ctx, s.ID, u.ID, aceptacionCompleta()); err != nil {
		t.Fatalf("Paso3: %v", err)
	}
	if _, _, err := ws.Paso4Presentar(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("Paso4: %v", err)
	}
	if _, _, err := ws.Paso5Pagar(ctx, s.ID, u.ID, "yape"); err != nil {
		t.Fatalf("primer pago: %v", err)
	}

	// El segundo pago choca con la tabla de transiciones.
	if _, _, err := ws.Paso5Pagar(ctx, s.ID, u.ID, "plin"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict en doble pago, obtuve %v", err)
	}
}

func TestWizardMetodoPagoInvalido(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ctx := context.Background()
	u := e.crearUsuario(t, types.RolCiudadano)

	s, err := ws.Iniciar(ctx, u.ID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	if _, _, err := ws.Paso5Pagar(ctx, s.ID, u.ID, "bitcoin"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("esperaba validación, obtuve %v", err)
	}
}
