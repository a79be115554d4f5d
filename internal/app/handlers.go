package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/handlers"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/server"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

type Handlers struct {
	Auth       *handlers.AuthHandler
	Wizard     *handlers.WizardHandler
	Solicitud  *handlers.SolicitudHandler
	Municipal  *handlers.MunicipalHandler
	Inspeccion *handlers.InspeccionHandler
	Documento  *handlers.DocumentoHandler
	Catalogo   *handlers.CatalogoHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth, reposet.User),
		Wizard:     handlers.NewWizardHandler(serviceset.Wizard, int(cfg.WizardSessionTTL.Seconds())),
		Solicitud:  handlers.NewSolicitudHandler(serviceset.Solicitud, serviceset.Notificacion),
		Municipal:  handlers.NewMunicipalHandler(serviceset.Solicitud, serviceset.Reporte),
		Inspeccion: handlers.NewInspeccionHandler(serviceset.Inspeccion),
		Documento:  handlers.NewDocumentoHandler(serviceset.Documento),
		Catalogo:   handlers.NewCatalogoHandler(serviceset.Catalogo),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlerset.Auth,
		AuthMiddleware:    mw.Auth,
		WizardHandler:     handlerset.Wizard,
		SolicitudHandler:  handlerset.Solicitud,
		MunicipalHandler:  handlerset.Municipal,
		InspeccionHandler: handlerset.Inspeccion,
		DocumentoHandler:  handlerset.Documento,
		CatalogoHandler:   handlerset.Catalogo,
		AllowOrigins:      cfg.AllowOrigins,
	})
}
