package domain

// EstadoInspeccion tracks an ITSE inspection independently of the
// application status.
type EstadoInspeccion string

const (
	InspeccionProgramada EstadoInspeccion = "programada"
	InspeccionEnCurso    EstadoInspeccion = "en_curso"
	InspeccionRealizada  EstadoInspeccion = "realizada"
	InspeccionAprobada   EstadoInspeccion = "aprobada"
	InspeccionRechazada  EstadoInspeccion = "rechazada"
	InspeccionCancelada  EstadoInspeccion = "cancelada"
)

// ResultadoInspeccion is the outcome derived from the safety checklist.
type ResultadoInspeccion string

const (
	ResultadoAprobado  ResultadoInspeccion = "aprobado"
	ResultadoObservado ResultadoInspeccion = "observado"
	ResultadoRechazado ResultadoInspeccion = "rechazado"
)

// Checklist is the five-item safety verification filled during an
// inspection visit.
type Checklist struct {
	Extintores       bool
	LucesEmergencia  bool
	Senalizacion     bool
	SistemaElectrico bool
	ViaEvacuacion    bool
}

// Aprobados counts the checklist items marked as compliant.
func (c Checklist) Aprobados() int {
	n := 0
	for _, ok := range []bool{c.Extintores, c.LucesEmergencia, c.Senalizacion, c.SistemaElectrico, c.ViaEvacuacion} {
		if ok {
			n++
		}
	}
	return n
}

// Resultado maps the compliant-item count to an outcome: 4 or 5 approve the
// visit, 2 or 3 leave it observed, fewer reject it.
func (c Checklist) Resultado() ResultadoInspeccion {
	switch n := c.Aprobados(); {
	case n >= 4:
		return ResultadoAprobado
	case n >= 2:
		return ResultadoObservado
	default:
		return ResultadoRechazado
	}
}
