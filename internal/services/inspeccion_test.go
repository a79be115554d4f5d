package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

func checklistCompleta() domain.Checklist {
	return domain.Checklist{
		Extintores:       true,
		LucesEmergencia:  true,
		Senalizacion:     true,
		SistemaElectrico: true,
		ViaEvacuacion:    true,
	}
}

func programarInspeccion(t *testing.T, e *entorno, solicitudID, funcionarioID uint, inspectorID uint) *types.Inspeccion {
	t.Helper()
	is := e.inspeccionService()
	insp, err := is.Programar(context.Background(), solicitudID, &inspectorID, time.Now().Add(48*time.Hour), funcionarioID)
	if err != nil {
		t.Fatalf("Programar: %v", err)
	}
	return insp
}

func TestInspeccionAprobadaDesbloqueaLicencia(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	is := e.inspeccionService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	inspector := e.crearUsuario(t, types.RolInspector)

	// Una discoteca es riesgo alto: la ITSE va antes de la licencia.
	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Discoteca / Karaoke")
	if !solicitud.RequiereITSEPrevia {
		t.Fatalf("riesgo alto debería exigir ITSE previa")
	}

	insp := programarInspeccion(t, e, solicitud.ID, funcionario.ID, inspector.ID)

	s, err := ss.Detalle(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Detalle: %v", err)
	}
	if s.Estado != domain.EstadoPendienteITSE {
		t.Fatalf("estado tras programar = %s", s.Estado)
	}

	if _, err := is.Iniciar(ctx, insp.ID, inspector.ID); err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	insp2, err := is.Registrar(ctx, insp.ID, inspector.ID, checklistCompleta(), "sin observaciones", "")
	if err != nil {
		t.Fatalf("Registrar: %v", err)
	}
	if insp2.Estado != domain.InspeccionAprobada || insp2.Resultado != domain.ResultadoAprobado {
		t.Fatalf("inspección: %+v", insp2)
	}

	s, err = ss.Detalle(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Detalle: %v", err)
	}
	if s.Estado != domain.EstadoITSEAprobado || !s.ITSEAprobado {
		t.Fatalf("solicitud tras ITSE: estado=%s itse=%v", s.Estado, s.ITSEAprobado)
	}
	if s.NumeroITSE == "" || s.VencimientoITSE == nil {
		t.Fatalf("certificado ITSE sin registrar: %+v", s)
	}

	// Con la ITSE aprobada la licencia sale directo.
	s, err = ss.EmitirLicencia(ctx, solicitud.ID, funcionario.ID)
	if err != nil {
		t.Fatalf("EmitirLicencia: %v", err)
	}
	if s.Estado != domain.EstadoLicenciaEmitida {
		t.Fatalf("estado = %s", s.Estado)
	}
}

func TestInspeccionConDosItemsQuedaObservada(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	is := e.inspeccionService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	inspector := e.crearUsuario(t, types.RolInspector)

	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Pub / Bar")
	insp := programarInspeccion(t, e, solicitud.ID, funcionario.ID, inspector.ID)

	insp2, err := is.Registrar(ctx, insp.ID, inspector.ID, domain.Checklist{
		Extintores:      true,
		LucesEmergencia: true,
	}, "faltan señalización y vía de evacuación", "subsanar en 15 días")
	if err != nil {
		t.Fatalf("Registrar: %v", err)
	}
	if insp2.Resultado != domain.ResultadoObservado || insp2.Estado != domain.InspeccionRealizada {
		t.Fatalf("inspección: %+v", insp2)
	}

	// El expediente se queda esperando una nueva visita.
	s, err := ss.Detalle(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Detalle: %v", err)
	}
	if s.Estado != domain.EstadoPendienteITSE {
		t.Fatalf("estado tras observación = %s", s.Estado)
	}

	// Reinspección aprobada.
	re := programarInspeccion(t, e, solicitud.ID, funcionario.ID, inspector.ID)
	if _, err := is.Registrar(ctx, re.ID, inspector.ID, checklistCompleta(), "", ""); err != nil {
		t.Fatalf("reinspección: %v", err)
	}
	s, err = ss.Detalle(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Detalle: %v", err)
	}
	if s.Estado != domain.EstadoITSEAprobado {
		t.Fatalf("estado tras reinspección = %s", s.Estado)
	}
}

func TestInspeccionRechazadaFuerzaRechazo(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	ss := e.solicitudService()
	is := e.inspeccionService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	inspector := e.crearUsuario(t, types.RolInspector)

	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Gasolinera")
	insp := programarInspeccion(t, e, solicitud.ID, funcionario.ID, inspector.ID)

	insp2, err := is.Registrar(ctx, insp.ID, inspector.ID, domain.Checklist{Extintores: true}, "local inseguro", "")
	if err != nil {
		t.Fatalf("Registrar: %v", err)
	}
	if insp2.Resultado != domain.ResultadoRechazado || insp2.Estado != domain.InspeccionRechazada {
		t.Fatalf("inspección: %+v", insp2)
	}

	s, err := ss.Detalle(ctx, solicitud.ID)
	if err != nil {
		t.Fatalf("Detalle: %v", err)
	}
	if s.Estado != domain.EstadoRechazado {
		t.Fatalf("estado tras rechazo = %s", s.Estado)
	}
}

func TestInspeccionDeOtroInspectorEsNotFound(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	is := e.inspeccionService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	inspector := e.crearUsuario(t, types.RolInspector)
	intruso := e.crearUsuario(t, types.RolInspector)

	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Imprenta")
	insp := programarInspeccion(t, e, solicitud.ID, funcionario.ID, inspector.ID)

	if _, err := is.Iniciar(ctx, insp.ID, intruso.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found, obtuve %v", err)
	}
	if _, err := is.Registrar(ctx, insp.ID, intruso.ID, checklistCompleta(), "", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found, obtuve %v", err)
	}
}

func TestProgramarConFechaPasadaFalla(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	is := e.inspeccionService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Carpintería")

	_, err := is.Programar(ctx, solicitud.ID, nil, time.Now().Add(-time.Hour), funcionario.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("esperaba validación, obtuve %v", err)
	}
}

func TestInspeccionCerradaNoSeReabre(t *testing.T) {
	e := nuevoEntorno(t)
	ws := e.wizardService()
	is := e.inspeccionService()
	ctx := context.Background()

	ciudadano := e.crearUsuario(t, types.RolCiudadano)
	funcionario := e.crearUsuario(t, types.RolFuncionario)
	inspector := e.crearUsuario(t, types.RolInspector)

	solicitud := presentarYPagar(t, e, ws, ciudadano.ID, "Metal mecánica")
	insp := programarInspeccion(t, e, solicitud.ID, funcionario.ID, inspector.ID)

	if _, err := is.Registrar(ctx, insp.ID, inspector.ID, checklistCompleta(), "", ""); err != nil {
		t.Fatalf("Registrar: %v", err)
	}
	if _, err := is.Registrar(ctx, insp.ID, inspector.ID, checklistCompleta(), "", ""); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict, obtuve %v", err)
	}
	if _, err := is.Iniciar(ctx, insp.ID, inspector.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("esperaba conflict, obtuve %v", err)
	}
}
