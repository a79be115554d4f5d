// Package classify holds the municipal risk-classification table for
// business categories. The table is ordered: the first matching entry wins,
// and categories without a match fall back to medium risk on purpose so the
// wizard never blocks on an unknown rubro.
package classify

import "strings"

// NivelRiesgo is the risk tier that drives the license fee and whether a
// pre-license ITSE inspection is required.
type NivelRiesgo string

const (
	RiesgoBajo    NivelRiesgo = "bajo"
	RiesgoMedio   NivelRiesgo = "medio"
	RiesgoAlto    NivelRiesgo = "alto"
	RiesgoMuyAlto NivelRiesgo = "muy_alto"
)

// Tarifas holds the license fee per tier, in soles.
var Tarifas = map[NivelRiesgo]float64{
	RiesgoBajo:    140.00,
	RiesgoMedio:   150.00,
	RiesgoAlto:    170.00,
	RiesgoMuyAlto: 192.00,
}

// Clasificacion is the verdict for one business category.
type Clasificacion struct {
	Nivel              NivelRiesgo
	RequiereITSEPrevia bool
	Monto              float64
	Descripcion        string
}

// Anexo describes one required annex document for the application file.
type Anexo struct {
	Tipo        string
	Nombre      string
	Obligatorio bool
	Descripcion string
}

type grupoRiesgo struct {
	nivel  NivelRiesgo
	rubros []string
}

// gruposRiesgo mirrors the municipal ordinance table. Order matters: it is
// the match priority.
var gruposRiesgo = []grupoRiesgo{
	{RiesgoBajo, []string{
		"Bodega / Minimarket",
		"Peluquería / Barbería",
		"Librería / Papelería",
		"Tienda de ropa",
		"Internet / Cabina pública",
		"Panadería",
		"Venta de repuestos",
		"Ferretería",
		"Bazar",
		"Florería",
	}},
	{RiesgoMedio, []string{
		"Restaurante",
		"Farmacia / Botica",
		"Veterinaria",
		"Taller mecánico",
		"Gimnasio",
		"Clínica veterinaria",
		"Cevichería",
		"Chifa",
		"Pollería",
		"Cafetería",
	}},
	{RiesgoAlto, []string{
		"Discoteca / Karaoke",
		"Pub / Bar",
		"Centro nocturno",
		"Fábrica pequeña",
		"Imprenta",
		"Carpintería",
		"Metal mecánica",
	}},
	{RiesgoMuyAlto, []string{
		"Gasolinera",
		"Planta industrial",
		"Depósito de gas",
		"Pirotecnia",
		"Productos químicos",
	}},
}

// Clasificar resolves the risk tier for a business category name. Matching is
// case-insensitive and bidirectional on substrings, as the catalog names are
// compounds ("Farmacia / Botica"). Unmatched input silently defaults to
// medium risk without pre-inspection.
func Clasificar(nombreRubro string) Clasificacion {
	nombre := strings.ToLower(strings.TrimSpace(nombreRubro))

	for _, grupo := range gruposRiesgo {
		for _, rubro := range grupo.rubros {
			r := strings.ToLower(rubro)
			if nombre != "" && (strings.Contains(nombre, r) || strings.Contains(r, nombre)) {
				return Clasificacion{
					Nivel:              grupo.nivel,
					RequiereITSEPrevia: grupo.nivel == RiesgoAlto || grupo.nivel == RiesgoMuyAlto,
					Monto:              Tarifas[grupo.nivel],
					Descripcion:        "Licencia para negocio de " + string(grupo.nivel) + " riesgo",
				}
			}
		}
	}

	return Clasificacion{
		Nivel:              RiesgoMedio,
		RequiereITSEPrevia: false,
		Monto:              Tarifas[RiesgoMedio],
		Descripcion:        "Licencia para negocio de riesgo medio",
	}
}

// NombresRubros returns every catalog name in table order, for seeding the
// master table.
func NombresRubros() []string {
	var nombres []string
	for _, grupo := range gruposRiesgo {
		nombres = append(nombres, grupo.rubros...)
	}
	return nombres
}

// AnexosRequeridos lists the annex documents the applicant must upload for a
// tier. Annex 18 (photos) is always required; low and medium tiers add the
// self-declaration annexes because their ITSE visit happens after issuance.
func AnexosRequeridos(nivel NivelRiesgo) []Anexo {
	anexos := []Anexo{
		{
			Tipo:        "anexo_18",
			Nombre:      "Anexo 18 - Fotos del local",
			Obligatorio: true,
			Descripcion: "Subir 3 fotos del local (exterior, interior, fachada)",
		},
	}
	if nivel == RiesgoBajo || nivel == RiesgoMedio {
		anexos = append(anexos,
			Anexo{
				Tipo:        "anexo_1",
				Nombre:      "Anexo 1 - Solicitud de inspección",
				Obligatorio: true,
				Descripcion: "Formulario de solicitud de inspección técnica",
			},
			Anexo{
				Tipo:        "anexo_2",
				Nombre:      "Anexo 2 - Características de la vivienda",
				Obligatorio: true,
				Descripcion: "Declaración de características (noble/rústico)",
			},
			Anexo{
				Tipo:        "anexo_4",
				Nombre:      "Anexo 4 - Declaración de seguridad",
				Obligatorio: true,
				Descripcion: "Llaves termomagnéticas, extintores vigentes, sin cable mellizo",
			},
		)
	}
	return anexos
}
