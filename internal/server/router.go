package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/handlers"
	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	WizardHandler     *handlers.WizardHandler
	SolicitudHandler  *handlers.SolicitudHandler
	MunicipalHandler  *handlers.MunicipalHandler
	InspeccionHandler *handlers.InspeccionHandler
	DocumentoHandler  *handlers.DocumentoHandler
	CatalogoHandler   *handlers.CatalogoHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Público
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/logout", cfg.AuthHandler.Logout)

		api.GET("/catalogo/rubros", cfg.CatalogoHandler.Rubros)
		api.GET("/catalogo/tarifas", cfg.CatalogoHandler.Tarifas)
		api.GET("/catalogo/zonas", cfg.CatalogoHandler.Zonas)
		api.GET("/catalogo/clasificar", cfg.CatalogoHandler.Clasificar)
		api.GET("/catalogo/zonificacion", cfg.CatalogoHandler.EvaluarZonificacion)

		api.GET("/licencias/verificar", cfg.SolicitudHandler.VerificarLicencia)
	}

	// Ciudadano autenticado
	ciudadano := api.Group("/")
	ciudadano.Use(cfg.AuthMiddleware.RequireAuth())
	{
		ciudadano.GET("/me", cfg.AuthHandler.Me)

		tramite := ciudadano.Group("/tramite")
		tramite.GET("/paso1", cfg.WizardHandler.Paso1)
		tramite.POST("/paso1", cfg.WizardHandler.Paso1Post)
		tramite.POST("/paso2", cfg.WizardHandler.Paso2Post)
		tramite.POST("/paso3", cfg.WizardHandler.Paso3Post)
		tramite.POST("/paso4", cfg.WizardHandler.Paso4Post)
		tramite.POST("/paso5", cfg.WizardHandler.Paso5Post)
		tramite.GET("/paso6", cfg.WizardHandler.Paso6)
		tramite.POST("/limpiar-sesion", cfg.WizardHandler.LimpiarSesion)

		ciudadano.GET("/solicitudes", cfg.SolicitudHandler.MisSolicitudes)
		ciudadano.GET("/solicitudes/:id", cfg.SolicitudHandler.Detalle)
		ciudadano.GET("/solicitudes/:id/historial", cfg.SolicitudHandler.Historial)
		ciudadano.POST("/solicitudes/:id/cancelar", cfg.SolicitudHandler.Cancelar)
		ciudadano.POST("/solicitudes/:id/documentos", cfg.DocumentoHandler.Subir)
		ciudadano.GET("/solicitudes/:id/documentos", cfg.DocumentoHandler.Listar)
		ciudadano.GET("/notificaciones", cfg.SolicitudHandler.MisNotificaciones)
	}

	// Back office municipal
	municipal := api.Group("/municipal")
	municipal.Use(cfg.AuthMiddleware.RequireAuth())
	municipal.Use(cfg.AuthMiddleware.RequireRol(types.RolFuncionario, types.RolInspector, types.RolAdministrador))
	{
		municipal.GET("/dashboard", cfg.MunicipalHandler.Dashboard)
		municipal.GET("/reportes/mensual", cfg.MunicipalHandler.SerieMensual)
		municipal.GET("/solicitudes", cfg.MunicipalHandler.Listar)
		municipal.GET("/solicitudes/:id", cfg.MunicipalHandler.Detalle)
		municipal.GET("/solicitudes/:id/historial", cfg.MunicipalHandler.Historial)
		municipal.GET("/solicitudes/:id/documentos", cfg.DocumentoHandler.ListarParaRevision)
		municipal.POST("/solicitudes/:id/revisar", cfg.MunicipalHandler.IniciarRevision)
		municipal.POST("/solicitudes/:id/aprobar", cfg.MunicipalHandler.Aprobar)
		municipal.POST("/solicitudes/:id/rechazar", cfg.MunicipalHandler.Rechazar)
		municipal.POST("/solicitudes/:id/emitir", cfg.MunicipalHandler.EmitirLicencia)
		municipal.POST("/solicitudes/:id/finalizar", cfg.MunicipalHandler.Finalizar)
		municipal.POST("/solicitudes/:id/inspecciones", cfg.InspeccionHandler.Programar)
		municipal.GET("/solicitudes/:id/inspecciones", cfg.InspeccionHandler.PorSolicitud)
		municipal.POST("/documentos/:id/validar", cfg.DocumentoHandler.Validar)

		municipal.GET("/inspecciones/agenda", cfg.InspeccionHandler.MiAgenda)
		municipal.GET("/inspecciones/:id", cfg.InspeccionHandler.Detalle)
		municipal.POST("/inspecciones/:id/iniciar", cfg.InspeccionHandler.Iniciar)
		municipal.POST("/inspecciones/:id/registrar", cfg.InspeccionHandler.Registrar)
	}

	// Administración de catálogos
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(cfg.AuthMiddleware.RequireRol(types.RolAdministrador))
	{
		admin.POST("/catalogo/rubros", cfg.CatalogoHandler.CrearRubro)
		admin.DELETE("/catalogo/rubros/:id", cfg.CatalogoHandler.DesactivarRubro)
		admin.PUT("/catalogo/tarifas", cfg.CatalogoHandler.ActualizarTarifa)
		admin.POST("/catalogo/zonas", cfg.CatalogoHandler.CrearZona)
	}

	return router
}
