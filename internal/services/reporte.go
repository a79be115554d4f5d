package services

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

// Dashboard aggregates the counters shown on the staff landing page.
type Dashboard struct {
	Total            int64              `json:"total"`
	PorEstado        map[string]int64   `json:"por_estado"`
	PorRiesgo        map[string]int64   `json:"por_riesgo"`
	PorcentajeRiesgo map[string]float64 `json:"porcentaje_riesgo"`
	EnTramite        int64              `json:"en_tramite"`
	Emitidas         int64              `json:"emitidas"`
	Rechazadas       int64              `json:"rechazadas"`
	RiesgoAlto       int64              `json:"riesgo_alto"`
	EmitidasDelMes   int64              `json:"emitidas_del_mes"`

	Recientes            []*types.Solicitud  `json:"recientes"`
	ProximasInspecciones []*types.Inspeccion `json:"proximas_inspecciones"`
}

// PuntoMensual is one month of the activity series.
type PuntoMensual struct {
	Mes        string  `json:"mes"`
	Ingresadas int64   `json:"ingresadas"`
	Emitidas   int64   `json:"emitidas"`
	Recaudado  float64 `json:"recaudado"`
}

type ReporteService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	SerieMensual(ctx context.Context, meses int) ([]PuntoMensual, error)
}

type reporteService struct {
	db             *gorm.DB
	log            *logger.Logger
	solicitudRepo  repos.SolicitudRepo
	pagoRepo       repos.PagoRepo
	inspeccionRepo repos.InspeccionRepo
}

func NewReporteService(
	db *gorm.DB,
	log *logger.Logger,
	solicitudRepo repos.SolicitudRepo,
	pagoRepo repos.PagoRepo,
	inspeccionRepo repos.InspeccionRepo,
) ReporteService {
	return &reporteService{
		db:             db,
		log:            log.With("service", "ReporteService"),
		solicitudRepo:  solicitudRepo,
		pagoRepo:       pagoRepo,
		inspeccionRepo: inspeccionRepo,
	}
}

func (rs *reporteService) Dashboard(ctx context.Context) (*Dashboard, error) {
	porEstado, err := rs.solicitudRepo.CountPorEstado(ctx, nil)
	if err != nil {
		return nil, err
	}
	porRiesgo, err := rs.solicitudRepo.CountPorRiesgo(ctx, nil)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		PorEstado:        make(map[string]int64),
		PorRiesgo:        make(map[string]int64),
		PorcentajeRiesgo: make(map[string]float64),
	}
	for _, c := range porEstado {
		d.PorEstado[c.Clave] = c.Numero
		d.Total += c.Numero
		switch domain.EstadoSolicitud(c.Clave) {
		case domain.EstadoLicenciaEmitida, domain.EstadoFinalizado:
			d.Emitidas += c.Numero
		case domain.EstadoRechazado:
			d.Rechazadas += c.Numero
		case domain.EstadoCancelado, domain.EstadoBorrador:
		default:
			d.EnTramite += c.Numero
		}
	}
	for _, c := range porRiesgo {
		d.PorRiesgo[c.Clave] = c.Numero
		if c.Clave == "alto" || c.Clave == "muy_alto" {
			d.RiesgoAlto += c.Numero
		}
	}
	if d.Total > 0 {
		for clave, numero := range d.PorRiesgo {
			pct := float64(numero) * 100 / float64(d.Total)
			d.PorcentajeRiesgo[clave] = math.Round(pct*10) / 10
		}
	}

	inicioMes := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	emitidasMes, err := rs.solicitudRepo.CountEmitidasEntre(ctx, nil, inicioMes, inicioMes.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	d.EmitidasDelMes = emitidasMes

	if d.Recientes, err = rs.solicitudRepo.ListRecientes(ctx, nil, 5); err != nil {
		return nil, err
	}
	if d.ProximasInspecciones, err = rs.inspeccionRepo.ListProximas(ctx, nil, time.Now(), 5); err != nil {
		return nil, err
	}
	return d, nil
}

func (rs *reporteService) SerieMensual(ctx context.Context, meses int) ([]PuntoMensual, error) {
	if meses < 1 {
		meses = 6
	}
	if meses > 24 {
		meses = 24
	}

	now := time.Now()
	inicio := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -(meses - 1), 0)

	serie := make([]PuntoMensual, 0, meses)
	for i := 0; i < meses; i++ {
		desde := inicio.AddDate(0, i, 0)
		hasta := desde.AddDate(0, 1, 0)

		ingresadas, err := rs.solicitudRepo.CountCreadasEntre(ctx, nil, desde, hasta)
		if err != nil {
			return nil, err
		}
		emitidas, err := rs.solicitudRepo.CountEmitidasEntre(ctx, nil, desde, hasta)
		if err != nil {
			return nil, err
		}
		recaudado, err := rs.pagoRepo.SumCompletadosEntre(ctx, nil, desde, hasta)
		if err != nil {
			return nil, err
		}
		serie = append(serie, PuntoMensual{
			Mes:        desde.Format("2006-01"),
			Ingresadas: ingresadas,
			Emitidas:   emitidas,
			Recaudado:  recaudado,
		})
	}
	return serie, nil
}
