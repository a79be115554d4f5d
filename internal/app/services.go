package app

import (
	"gorm.io/gorm"

	clientredis "github.com/Yamir213/sistema-licencias-ica/internal/clients/redis"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
	"github.com/Yamir213/sistema-licencias-ica/internal/wizard"
)

type Services struct {
	Auth         services.AuthService
	Wizard       services.WizardService
	Solicitud    services.SolicitudService
	Inspeccion   services.InspeccionService
	Documento    services.DocumentoService
	Notificacion services.NotificacionService
	Reporte      services.ReporteService
	Catalogo     services.CatalogoService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	store, err := wireSessionStore(cfg, log)
	if err != nil {
		return Services{}, err
	}

	notificacion := services.NewNotificacionService(db, log, reposet.Notificacion, services.NewLogSender(log))

	return Services{
		Auth:         services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Wizard:       services.NewWizardService(db, log, store, reposet.Solicitud, reposet.Pago, reposet.Auditoria, reposet.Catalogo, notificacion),
		Solicitud:    services.NewSolicitudService(db, log, reposet.Solicitud, reposet.Auditoria, notificacion),
		Inspeccion:   services.NewInspeccionService(db, log, reposet.Inspeccion, reposet.Solicitud, reposet.Auditoria, notificacion),
		Documento:    services.NewDocumentoService(db, log, reposet.Documento, reposet.Solicitud, reposet.Auditoria),
		Notificacion: notificacion,
		Reporte:      services.NewReporteService(db, log, reposet.Solicitud, reposet.Pago, reposet.Inspeccion),
		Catalogo:     services.NewCatalogoService(db, log, reposet.Catalogo),
	}, nil
}

// wireSessionStore picks the wizard session backend. Redis survives restarts
// and multiple instances; memory serves single-instance and development.
func wireSessionStore(cfg Config, log *logger.Logger) (wizard.Store, error) {
	if cfg.SessionBackend == "redis" {
		rdb, err := clientredis.NewClient(log)
		if err != nil {
			return nil, err
		}
		return wizard.NewRedisStore(rdb, cfg.WizardSessionTTL, log), nil
	}
	return wizard.NewMemoryStore(cfg.WizardSessionTTL, log), nil
}
