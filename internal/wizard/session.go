// Package wizard holds the six-step application flow: server-side session
// state keyed by an opaque token, plus the service that advances a citizen
// from risk classification to simulated payment.
package wizard

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yamir213/sistema-licencias-ica/internal/classify"
	"github.com/Yamir213/sistema-licencias-ica/internal/zoning"
)

// DatosClasificacion is what step 1 leaves in the session.
type DatosClasificacion struct {
	Rubro              string  `json:"rubro"`
	NivelRiesgo        string  `json:"nivel_riesgo"`
	RequiereITSEPrevia bool    `json:"requiere_itse_previa"`
	Monto              float64 `json:"monto"`
}

// DatosNegocio is the business form captured in step 2.
type DatosNegocio struct {
	NombreNegocio    string `json:"nombre_negocio"`
	DireccionNegocio string `json:"direccion_negocio"`
	Referencia       string `json:"referencia,omitempty"`
	Distrito         string `json:"distrito"`
	TelefonoContacto string `json:"telefono_contacto,omitempty"`
	AreaLocal        string `json:"area_local,omitempty"`
}

// Aceptacion carries the condition checkbox and the three sworn declarations
// of the step 3 form.
type Aceptacion struct {
	AceptaCondiciones bool `json:"acepta_condiciones"`
	Declaracion1      bool `json:"declaracion_1"`
	Declaracion2      bool `json:"declaracion_2"`
	Declaracion3      bool `json:"declaracion_3"`
}

// DatosZonificacion is the advisory verdict stored by step 3.
type DatosZonificacion struct {
	Compatible      bool     `json:"compatible"`
	Zona            string   `json:"zona"`
	ZonasPermitidas []string `json:"zonas_permitidas"`
	Mensaje         string   `json:"mensaje"`

	Aceptacion Aceptacion `json:"aceptacion"`
}

// DatosPago is the simulated payment outcome stored by step 5.
type DatosPago struct {
	CodigoPago  string    `json:"codigo_pago"`
	MetodoPago  string    `json:"metodo_pago"`
	Monto       float64   `json:"monto"`
	Comprobante string    `json:"comprobante"`
	FechaPago   time.Time `json:"fecha_pago"`
}

// Sesion is one in-progress application. It lives only in the session store
// and is gone after the confirmation step or after the TTL.
type Sesion struct {
	ID        string `json:"id"`
	UsuarioID uint   `json:"usuario_id"`

	// PasoActual advances only when a step completes, never backwards.
	PasoActual int `json:"paso_actual"`

	// Version guards against interleaved double-submits; every successful
	// write through CompareAndSwap increments it.
	Version int64 `json:"version"`

	Clasificacion *DatosClasificacion `json:"clasificacion,omitempty"`
	Negocio       *DatosNegocio       `json:"negocio,omitempty"`
	Zonificacion  *DatosZonificacion  `json:"zonificacion,omitempty"`

	// SolicitudID is set exactly once, by the submit step.
	SolicitudID uint       `json:"solicitud_id,omitempty"`
	Pago        *DatosPago `json:"pago,omitempty"`

	CreadoEn      time.Time `json:"creado_en"`
	ActualizadoEn time.Time `json:"actualizado_en"`
}

// NuevaSesion starts an empty session at step 1 for the given user.
func NuevaSesion(usuarioID uint) *Sesion {
	now := time.Now()
	return &Sesion{
		ID:            uuid.NewString(),
		UsuarioID:     usuarioID,
		PasoActual:    1,
		CreadoEn:      now,
		ActualizadoEn: now,
	}
}

// AplicarClasificacion records the step 1 verdict on the session.
func (s *Sesion) AplicarClasificacion(rubro string, c classify.Clasificacion) {
	s.Clasificacion = &DatosClasificacion{
		Rubro:              strings.TrimSpace(rubro),
		NivelRiesgo:        string(c.Nivel),
		RequiereITSEPrevia: c.RequiereITSEPrevia,
		Monto:              c.Monto,
	}
	if s.PasoActual < 2 {
		s.PasoActual = 2
	}
}

// AplicarNegocio records the step 2 form on the session.
func (s *Sesion) AplicarNegocio(d DatosNegocio) {
	s.Negocio = &d
	if s.PasoActual < 3 {
		s.PasoActual = 3
	}
}

// AplicarZonificacion records the step 3 verdict on the session.
func (s *Sesion) AplicarZonificacion(ev zoning.Evaluacion, a Aceptacion) {
	s.Zonificacion = &DatosZonificacion{
		Compatible:      ev.Compatible,
		Zona:            ev.Zona,
		ZonasPermitidas: ev.ZonasPermitidas,
		Mensaje:         ev.Mensaje,
		Aceptacion:      a,
	}
	if s.PasoActual < 4 {
		s.PasoActual = 4
	}
}

// ListaParaPresentar reports whether steps 1 through 3 are complete.
func (s *Sesion) ListaParaPresentar() bool {
	return s.Clasificacion != nil && s.Negocio != nil && s.Zonificacion != nil
}

// Store keeps wizard sessions between requests. Implementations stamp a TTL
// on every write so abandoned sessions expire on their own.
type Store interface {
	// Get returns the session or a not-found error when absent or expired.
	Get(ctx context.Context, id string) (*Sesion, error)
	// Put writes the session unconditionally and refreshes its TTL.
	Put(ctx context.Context, s *Sesion) error
	// CompareAndSwap writes the session only when the stored version still
	// equals expected, then increments the version. A lost race returns a
	// conflict error.
	CompareAndSwap(ctx context.Context, s *Sesion, expected int64) error
	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}
