package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/classify"
	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
	"github.com/Yamir213/sistema-licencias-ica/internal/wizard"
	"github.com/Yamir213/sistema-licencias-ica/internal/zoning"
)

// WizardService drives the six-step application flow. Steps 1-3 only touch
// the session store; step 4 is the pivot that creates the persisted
// Solicitud exactly once; step 5 runs the simulated payment; step 6 reads
// the final summary. A session presented by anyone but its owner behaves as
// missing.
type WizardService interface {
	Iniciar(ctx context.Context, usuarioID uint) (*wizard.Sesion, error)
	Obtener(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, error)

	Paso1Clasificar(ctx context.Context, sesionID string, usuarioID uint, rubro string) (*wizard.Sesion, []classify.Anexo, error)
	Paso2Negocio(ctx context.Context, sesionID string, usuarioID uint, datos wizard.DatosNegocio) (*wizard.Sesion, error)
	Paso3Zonificacion(ctx context.Context, sesionID string, usuarioID uint, a wizard.Aceptacion) (*wizard.Sesion, zoning.Evaluacion, error)
	Paso4Presentar(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, *types.Solicitud, error)
	Paso5Pagar(ctx context.Context, sesionID string, usuarioID uint, metodoPago string) (*wizard.Sesion, *types.Pago, error)
	Paso6Resumen(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, *types.Solicitud, error)

	Limpiar(ctx context.Context, sesionID string, usuarioID uint) error
}

type wizardService struct {
	db             *gorm.DB
	log            *logger.Logger
	store          wizard.Store
	solicitudRepo  repos.SolicitudRepo
	pagoRepo       repos.PagoRepo
	auditoriaRepo  repos.AuditoriaRepo
	catalogoRepo   repos.CatalogoRepo
	notificaciones NotificacionService
}

func NewWizardService(
	db *gorm.DB,
	log *logger.Logger,
	store wizard.Store,
	solicitudRepo repos.SolicitudRepo,
	pagoRepo repos.PagoRepo,
	auditoriaRepo repos.AuditoriaRepo,
	catalogoRepo repos.CatalogoRepo,
	notificaciones NotificacionService,
) WizardService {
	return &wizardService{
		db:             db,
		log:            log.With("service", "WizardService"),
		store:          store,
		solicitudRepo:  solicitudRepo,
		pagoRepo:       pagoRepo,
		auditoriaRepo:  auditoriaRepo,
		catalogoRepo:   catalogoRepo,
		notificaciones: notificaciones,
	}
}

func (ws *wizardService) Iniciar(ctx context.Context, usuarioID uint) (*wizard.Sesion, error) {
	s := wizard.NuevaSesion(usuarioID)
	if err := ws.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	ws.log.Debug("Sesión de trámite iniciada", "sesion_id", s.ID, "usuario_id", usuarioID)
	return s, nil
}

func (ws *wizardService) Obtener(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, error) {
	return ws.resolver(ctx, sesionID, usuarioID)
}

func (ws *wizardService) Paso1Clasificar(ctx context.Context, sesionID string, usuarioID uint, rubro string) (*wizard.Sesion, []classify.Anexo, error) {
	rubro = strings.TrimSpace(rubro)
	if rubro == "" {
		return nil, nil, domain.ValidationError("selecciona un rubro")
	}

	s, err := ws.resolver(ctx, sesionID, usuarioID)
	if err != nil {
		return nil, nil, err
	}

	c := classify.Clasificar(rubro)
	s.AplicarClasificacion(rubro, c)
	if err := ws.store.CompareAndSwap(ctx, s, s.Version); err != nil {
		return nil, nil, err
	}
	return s, classify.AnexosRequeridos(c.Nivel), nil
}

func (ws *wizardService) Paso2Negocio(ctx context.Context, sesionID string, usuarioID uint, datos wizard.DatosNegocio) (*wizard.Sesion, error) {
	datos.NombreNegocio = strings.TrimSpace(datos.NombreNegocio)
	datos.DireccionNegocio = strings.TrimSpace(datos.DireccionNegocio)
	if datos.NombreNegocio == "" {
		return nil, domain.ValidationError("el nombre del negocio es obligatorio")
	}
	if datos.DireccionNegocio == "" {
		return nil, domain.ValidationError("la dirección del negocio es obligatoria")
	}
	if datos.Distrito == "" {
		datos.Distrito = "Ica"
	}

	s, err := ws.resolver(ctx, sesionID, usuarioID)
	if err != nil {
		return nil, err
	}
	if s.Clasificacion == nil {
		return nil, domain.ValidationError("completa primero la clasificación del rubro")
	}

	s.AplicarNegocio(datos)
	if err := ws.store.CompareAndSwap(ctx, s, s.Version); err != nil {
		return nil, err
	}
	return s, nil
}

func (ws *wizardService) Paso3Zonificacion(ctx context.Context, sesionID string, usuarioID uint, a wizard.Aceptacion) (*wizard.Sesion, zoning.Evaluacion, error) {
	s, err := ws.resolver(ctx, sesionID, usuarioID)
	if err != nil {
		return nil, zoning.Evaluacion{}, err
	}
	if s.Clasificacion == nil || s.Negocio == nil {
		return nil, zoning.Evaluacion{}, domain.ValidationError("completa primero los pasos anteriores")
	}
	if !a.AceptaCondiciones {
		return nil, zoning.Evaluacion{}, domain.ValidationError("debes aceptar las condiciones del trámite")
	}

	ev := zoning.Evaluar(s.Clasificacion.Rubro, s.Negocio.Distrito, s.Negocio.DireccionNegocio)
	s.AplicarZonificacion(ev, a)
	if err := ws.store.CompareAndSwap(ctx, s, s.Version); err != nil {
		return nil, zoning.Evaluacion{}, err
	}
	return s, ev, nil
}

// Paso4Presentar creates the expediente. The compare-and-swap claim below
// serializes double-submits: the losing request sees a conflict, and a
// retry of the same session returns the already created application.
func (ws *wizardService) Paso4Presentar(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, *types.Solicitud, error) {
	s, err := ws.resolver(ctx, sesionID, usuarioID)
	if err != nil {
		return nil, nil, err
	}
	if s.SolicitudID != 0 {
		existente, err := ws.solicitudRepo.GetByID(ctx, nil, s.SolicitudID)
		if err != nil {
			return nil, nil, err
		}
		return s, existente, nil
	}
	if !s.ListaParaPresentar() {
		return nil, nil, domain.ValidationError("completa los pasos anteriores antes de presentar")
	}

	// Reclamo optimista de la sesión antes de escribir en la base.
	if err := ws.store.CompareAndSwap(ctx, s, s.Version); err != nil {
		return nil, nil, err
	}

	var solicitud *types.Solicitud
	err = ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rubro, err := ws.catalogoRepo.GetRubroPorNombre(ctx, tx, s.Clasificacion.Rubro)
		if errors.Is(err, domain.ErrNotFound) {
			rubro, err = ws.catalogoRepo.CreateRubro(ctx, tx, &types.Rubro{
				Codigo:             fmt.Sprintf("RX%d", time.Now().UnixNano()%100000),
				Nombre:             s.Clasificacion.Rubro,
				NivelRiesgo:        s.Clasificacion.NivelRiesgo,
				RequiereITSEPrevia: s.Clasificacion.RequiereITSEPrevia,
				IsActive:           true,
			})
		}
		if err != nil {
			return err
		}

		now := time.Now()
		estado, err := domain.EstadoBorrador.Transicionar(domain.EstadoPendientePago)
		if err != nil {
			return err
		}

		solicitud = &types.Solicitud{
			NumeroExpediente:          domain.NumeroExpediente(now),
			UsuarioID:                 usuarioID,
			RubroID:                   rubro.ID,
			NombreNegocio:             s.Negocio.NombreNegocio,
			DireccionNegocio:          s.Negocio.DireccionNegocio,
			Referencia:                s.Negocio.Referencia,
			Distrito:                  s.Negocio.Distrito,
			TelefonoContacto:          s.Negocio.TelefonoContacto,
			AreaLocal:                 s.Negocio.AreaLocal,
			NivelRiesgo:               s.Clasificacion.NivelRiesgo,
			Estado:                    estado,
			RequiereITSEPrevia:        s.Clasificacion.RequiereITSEPrevia,
			CompatibleZonificacion:    s.Zonificacion.Compatible,
			ObservacionesZonificacion: s.Zonificacion.Mensaje,
			FechaPresentacion:         &now,
		}
		if _, err := ws.solicitudRepo.Create(ctx, tx, solicitud); err != nil {
			return err
		}

		actor := usuarioID
		_, err = ws.auditoriaRepo.Create(ctx, tx, &types.Auditoria{
			SolicitudID:    solicitud.ID,
			UsuarioID:      &actor,
			Accion:         "presentar",
			EstadoAnterior: string(domain.EstadoBorrador),
			EstadoNuevo:    string(estado),
			Detalle:        "solicitud presentada desde el asistente",
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.SolicitudID = solicitud.ID
	if s.PasoActual < 5 {
		s.PasoActual = 5
	}
	if err := ws.store.Put(ctx, s); err != nil {
		ws.log.Warn("No se pudo fijar la solicitud en la sesión", "sesion_id", s.ID, "error", err)
	}

	ws.notificaciones.Notificar(ctx, usuarioID, &solicitud.ID, "solicitud_presentada",
		"Solicitud presentada",
		fmt.Sprintf("Tu expediente %s fue registrado y está pendiente de pago.", solicitud.NumeroExpediente))
	ws.log.Info("Solicitud presentada", "solicitud_id", solicitud.ID, "expediente", solicitud.NumeroExpediente)
	return s, solicitud, nil
}

// Paso5Pagar simulates the payment gateway: any accepted method succeeds
// immediately. The status transition doubles as the idempotency guard, a
// second payment attempt finds the application already in pagado.
func (ws *wizardService) Paso5Pagar(ctx context.Context, sesionID string, usuarioID uint, metodoPago string) (*wizard.Sesion, *types.Pago, error) {
	if !types.MetodoPagoValido(metodoPago) {
		return nil, nil, domain.ValidationError("método de pago no soportado: " + metodoPago)
	}

	s, err := ws.resolver(ctx, sesionID, usuarioID)
	if err != nil {
		return nil, nil, err
	}
	if s.SolicitudID == 0 {
		return nil, nil, domain.ValidationError("presenta la solicitud antes de pagar")
	}

	var pago *types.Pago
	err = ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		solicitud, err := ws.solicitudRepo.GetByID(ctx, tx, s.SolicitudID)
		if err != nil {
			return err
		}
		if solicitud.UsuarioID != usuarioID {
			return domain.NotFoundError("solicitud no encontrada")
		}

		anterior := solicitud.Estado
		nuevo, err := anterior.Transicionar(domain.EstadoPagado)
		if err != nil {
			return err
		}

		now := time.Now()
		monto := classify.Tarifas[classify.NivelRiesgo(solicitud.NivelRiesgo)]
		pago = &types.Pago{
			SolicitudID:       solicitud.ID,
			CodigoPago:        domain.CodigoPago(now),
			Monto:             monto,
			Moneda:            "PEN",
			MetodoPago:        metodoPago,
			Estado:            types.PagoCompletado,
			CodigoTransaccion: fmt.Sprintf("SIM-%d", now.UnixNano()),
			FechaTransaccion:  &now,
			DatosTransaccion:  datatypes.JSON([]byte(`{"pasarela":"simulada"}`)),
			ComprobanteNumero: domain.NumeroComprobante(now, solicitud.ID),
			CreatedBy:         usuarioID,
		}
		if _, err := ws.pagoRepo.Create(ctx, tx, pago); err != nil {
			return err
		}

		solicitud.Estado = nuevo
		solicitud.MontoPago = &monto
		solicitud.FechaPago = &now
		solicitud.MetodoPago = metodoPago
		solicitud.ComprobantePago = pago.ComprobanteNumero
		if err := ws.solicitudRepo.Update(ctx, tx, solicitud); err != nil {
			return err
		}

		actor := usuarioID
		_, err = ws.auditoriaRepo.Create(ctx, tx, &types.Auditoria{
			SolicitudID:    solicitud.ID,
			UsuarioID:      &actor,
			Accion:         "pagar",
			EstadoAnterior: string(anterior),
			EstadoNuevo:    string(nuevo),
			Detalle:        fmt.Sprintf("pago de S/ %.2f vía %s", monto, metodoPago),
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.Pago = &wizard.DatosPago{
		CodigoPago:  pago.CodigoPago,
		MetodoPago:  pago.MetodoPago,
		Monto:       pago.Monto,
		Comprobante: pago.ComprobanteNumero,
		FechaPago:   *pago.FechaTransaccion,
	}
	if s.PasoActual < 6 {
		s.PasoActual = 6
	}
	if err := ws.store.Put(ctx, s); err != nil {
		ws.log.Warn("No se pudo registrar el pago en la sesión", "sesion_id", s.ID, "error", err)
	}

	ws.notificaciones.Notificar(ctx, usuarioID, &s.SolicitudID, "pago_confirmado",
		"Pago confirmado",
		fmt.Sprintf("Recibimos tu pago de S/ %.2f (comprobante %s).", pago.Monto, pago.ComprobanteNumero))
	return s, pago, nil
}

func (ws *wizardService) Paso6Resumen(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, *types.Solicitud, error) {
	s, err := ws.resolver(ctx, sesionID, usuarioID)
	if err != nil {
		return nil, nil, err
	}
	if s.SolicitudID == 0 {
		return nil, nil, domain.ValidationError("la solicitud aún no fue presentada")
	}
	solicitud, err := ws.solicitudRepo.GetByID(ctx, nil, s.SolicitudID)
	if err != nil {
		return nil, nil, err
	}
	return s, solicitud, nil
}

func (ws *wizardService) Limpiar(ctx context.Context, sesionID string, usuarioID uint) error {
	if _, err := ws.resolver(ctx, sesionID, usuarioID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return ws.store.Delete(ctx, sesionID)
}

// resolver loads a session and enforces ownership. A mismatched owner gets
// the same not-found as a missing session.
func (ws *wizardService) resolver(ctx context.Context, sesionID string, usuarioID uint) (*wizard.Sesion, error) {
	if sesionID == "" {
		return nil, domain.NotFoundError("sesión no encontrada")
	}
	s, err := ws.store.Get(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	if s.UsuarioID != usuarioID {
		return nil, domain.NotFoundError("sesión no encontrada")
	}
	return s, nil
}
