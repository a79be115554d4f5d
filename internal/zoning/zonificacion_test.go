package zoning

import "testing"

func TestZonaProbablePorPalabrasClave(t *testing.T) {
	casos := []struct {
		direccion string
		zona      string
	}{
		{"Urb. residencial Las Dunas Mz A", ZonaResidencial},
		{"frente a la casa comunal", ZonaResidencial},
		{"Parque industrial lote 7", ZonaIndustrial},
		{"Av. industrial 123", ZonaIndustrial},
		{"Balneario de Huacachina s/n", ZonaTuristica},
		{"circuito turístico km 2", ZonaTuristica},
		{"Calle Lima 421", ZonaComercial},
		{"", ZonaComercial},
	}
	for _, c := range casos {
		if got := ZonaProbable(c.direccion); got != c.zona {
			t.Fatalf("%q: zona = %s, se esperaba %s", c.direccion, got, c.zona)
		}
	}
}

func TestEvaluarRestauranteEnZonaIndustrial(t *testing.T) {
	// A restaurant next to the industrial park is compatible: ZI is in the
	// restaurant's permitted set {ZC, ZT, ZI}.
	ev := Evaluar("Restaurante", "Ica", "Av. industrial 500")
	if ev.Zona != ZonaIndustrial {
		t.Fatalf("zona = %s", ev.Zona)
	}
	if !ev.Compatible {
		t.Fatalf("restaurante en ZI debería ser compatible, permitidas=%v", ev.ZonasPermitidas)
	}
}

func TestEvaluarIncompatibleEsSoloAdvertencia(t *testing.T) {
	// A nightclub in a residential address: incompatible, but advisory only.
	ev := Evaluar("Discoteca / Karaoke", "Parcona", "Urb. residencial El Carmen")
	if ev.Compatible {
		t.Fatalf("discoteca en ZR no debería ser compatible")
	}
	if ev.NivelAdvertencia != "medio" || ev.Recomendacion == "" {
		t.Fatalf("veredicto incompatible sin advertencia: %+v", ev)
	}
}

func TestEvaluarRubroDesconocidoUsaComercialIndustrial(t *testing.T) {
	ev := Evaluar("Planetario", "Ica", "Calle Bolívar 100")
	if len(ev.ZonasPermitidas) != 2 || ev.ZonasPermitidas[0] != ZonaComercial || ev.ZonasPermitidas[1] != ZonaIndustrial {
		t.Fatalf("permitidas por defecto = %v", ev.ZonasPermitidas)
	}
	if !ev.Compatible {
		t.Fatalf("zona comercial por defecto debería ser compatible")
	}
}
