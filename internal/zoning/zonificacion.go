// Package zoning evaluates whether a business category is compatible with
// the probable land-use zone of an address. The check is advisory: an
// incompatible verdict never blocks the wizard, it is settled later by the
// technical inspection.
package zoning

import "strings"

// Zone codes used across the urban zoning catalog.
const (
	ZonaResidencial = "ZR"
	ZonaComercial   = "ZC"
	ZonaIndustrial  = "ZI"
	ZonaTuristica   = "ZT"
)

// zonasPermitidas maps a category keyword to the zone codes where that
// business may operate. Lookup is by substring against the category name.
var zonasPermitidas = map[string][]string{
	"bodega":      {ZonaResidencial, ZonaComercial, ZonaTuristica},
	"minimarket":  {ZonaResidencial, ZonaComercial, ZonaTuristica},
	"restaurante": {ZonaComercial, ZonaTuristica, ZonaIndustrial},
	"farmacia":    {ZonaResidencial, ZonaComercial, ZonaTuristica},
	"peluquería":  {ZonaResidencial, ZonaComercial, ZonaTuristica},
	"librería":    {ZonaResidencial, ZonaComercial, ZonaTuristica},
	"taller":      {ZonaComercial, ZonaIndustrial},
	"gimnasio":    {ZonaComercial, ZonaTuristica},
	"discoteca":   {ZonaComercial},
	"gasolinera":  {ZonaIndustrial},
	"industrial":  {ZonaIndustrial},
	"oficina":     {ZonaComercial, ZonaTuristica},
	"colegio":     {ZonaResidencial, ZonaComercial},
	"guardería":   {ZonaResidencial, ZonaComercial},
}

// ordenClaves keeps the map lookup deterministic.
var ordenClaves = []string{
	"bodega", "minimarket", "restaurante", "farmacia", "peluquería",
	"librería", "taller", "gimnasio", "discoteca", "gasolinera",
	"industrial", "oficina", "colegio", "guardería",
}

// Evaluacion is the advisory zoning verdict shown in wizard step 3 and
// stored on the application.
type Evaluacion struct {
	Compatible       bool
	Zona             string
	ZonasPermitidas  []string
	Mensaje          string
	NivelAdvertencia string
	Recomendacion    string
}

// ZonaProbable infers the zone code from address keywords. The default is
// commercial: most of the city's addresses without an explicit hint sit in
// mixed commercial blocks.
func ZonaProbable(direccion string) string {
	d := strings.ToLower(direccion)
	switch {
	case strings.Contains(d, "residencial") || strings.Contains(d, "casa"):
		return ZonaResidencial
	case strings.Contains(d, "industrial") || strings.Contains(d, "parque industrial"):
		return ZonaIndustrial
	case strings.Contains(d, "huacachina") || strings.Contains(d, "turístico"):
		return ZonaTuristica
	default:
		return ZonaComercial
	}
}

// Evaluar resolves compatibility for a category at an address. It always
// succeeds; categories missing from the table are allowed in commercial and
// industrial zones.
func Evaluar(rubro, distrito, direccion string) Evaluacion {
	_ = distrito // the district catalog only refines the message today
	rubroLower := strings.ToLower(rubro)
	zona := ZonaProbable(direccion)

	var permitidas []string
	for _, clave := range ordenClaves {
		if strings.Contains(rubroLower, clave) {
			permitidas = zonasPermitidas[clave]
			break
		}
	}
	if len(permitidas) == 0 {
		permitidas = []string{ZonaComercial, ZonaIndustrial}
	}

	compatible := false
	for _, z := range permitidas {
		if z == zona {
			compatible = true
			break
		}
	}

	ev := Evaluacion{
		Compatible:      compatible,
		Zona:            zona,
		ZonasPermitidas: permitidas,
	}
	if compatible {
		ev.Mensaje = "El rubro es compatible con la zona seleccionada"
		ev.NivelAdvertencia = "bajo"
	} else {
		ev.Mensaje = "El rubro podría no ser compatible con esta zona. Se evaluará en la inspección técnica."
		ev.NivelAdvertencia = "medio"
		ev.Recomendacion = "Verifica que tu local esté en zona comercial o industrial"
	}
	return ev
}
