package domain

import "strings"

// EstadoSolicitud is the closed status enumeration of a license application.
// The stored values match the expedientes already issued by the portal, so
// they must not be renamed.
type EstadoSolicitud string

const (
	EstadoBorrador        EstadoSolicitud = "borrador"
	EstadoPendientePago   EstadoSolicitud = "pendiente_pago"
	EstadoPagado          EstadoSolicitud = "pagado"
	EstadoEnRevision      EstadoSolicitud = "en_revision"
	EstadoAprobado        EstadoSolicitud = "aprobado"
	EstadoRechazado       EstadoSolicitud = "rechazado"
	EstadoPendienteITSE   EstadoSolicitud = "pendiente_itse"
	EstadoITSEAprobado    EstadoSolicitud = "itse_aprobado"
	EstadoLicenciaEmitida EstadoSolicitud = "licencia_emitida"
	EstadoFinalizado      EstadoSolicitud = "finalizado"
	EstadoCancelado       EstadoSolicitud = "cancelado"
)

// transiciones is the only source of truth for legal status changes. The
// legacy portal advanced the string field freely from any handler; here an
// unlisted transition is rejected with ErrConflict.
var transiciones = map[EstadoSolicitud][]EstadoSolicitud{
	EstadoBorrador:        {EstadoPendientePago, EstadoCancelado},
	EstadoPendientePago:   {EstadoPagado, EstadoCancelado},
	EstadoPagado:          {EstadoEnRevision, EstadoPendienteITSE, EstadoRechazado, EstadoCancelado},
	EstadoEnRevision:      {EstadoAprobado, EstadoRechazado, EstadoPendienteITSE, EstadoCancelado},
	EstadoAprobado:        {EstadoPendienteITSE, EstadoLicenciaEmitida, EstadoCancelado},
	EstadoPendienteITSE:   {EstadoITSEAprobado, EstadoRechazado, EstadoCancelado},
	EstadoITSEAprobado:    {EstadoLicenciaEmitida, EstadoRechazado, EstadoCancelado},
	EstadoLicenciaEmitida: {EstadoFinalizado},
	EstadoRechazado:       {},
	EstadoFinalizado:      {},
	EstadoCancelado:       {},
}

// EsTerminal reports whether no further transition can leave the status.
func (e EstadoSolicitud) EsTerminal() bool {
	return len(transiciones[e]) == 0
}

// Puede reports whether the transition e -> destino is listed.
func (e EstadoSolicitud) Puede(destino EstadoSolicitud) bool {
	for _, d := range transiciones[e] {
		if d == destino {
			return true
		}
	}
	return false
}

// Transicionar validates e -> destino and returns the destination status.
// An inspection rejection bypasses the table: it forces "rechazado" from any
// non-terminal state (see ForzarRechazo).
func (e EstadoSolicitud) Transicionar(destino EstadoSolicitud) (EstadoSolicitud, error) {
	if !e.Puede(destino) {
		return e, ConflictError("transición no permitida: " + string(e) + " -> " + string(destino))
	}
	return destino, nil
}

// ForzarRechazo moves any application that has not reached a terminal state
// to "rechazado". A rejected safety inspection ends the case no matter where
// the expediente was.
func (e EstadoSolicitud) ForzarRechazo() (EstadoSolicitud, error) {
	if e.EsTerminal() && e != EstadoRechazado {
		return e, ConflictError("la solicitud ya está cerrada: " + string(e))
	}
	return EstadoRechazado, nil
}

// ParseEstado normalizes a stored or submitted status string.
func ParseEstado(s string) (EstadoSolicitud, bool) {
	e := EstadoSolicitud(strings.ToLower(strings.TrimSpace(s)))
	_, ok := transiciones[e]
	return e, ok
}
