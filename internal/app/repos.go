package app

import (
	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Solicitud    repos.SolicitudRepo
	Pago         repos.PagoRepo
	Documento    repos.DocumentoRepo
	Auditoria    repos.AuditoriaRepo
	Inspeccion   repos.InspeccionRepo
	Notificacion repos.NotificacionRepo
	Catalogo     repos.CatalogoRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Solicitud:    repos.NewSolicitudRepo(db, log),
		Pago:         repos.NewPagoRepo(db, log),
		Documento:    repos.NewDocumentoRepo(db, log),
		Auditoria:    repos.NewAuditoriaRepo(db, log),
		Inspeccion:   repos.NewInspeccionRepo(db, log),
		Notificacion: repos.NewNotificacionRepo(db, log),
		Catalogo:     repos.NewCatalogoRepo(db, log),
	}
}
