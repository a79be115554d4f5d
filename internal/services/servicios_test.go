package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
	"github.com/Yamir213/sistema-licencias-ica/internal/wizard"
)

type entorno struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	solicitudRepo  repos.SolicitudRepo
	pagoRepo       repos.PagoRepo
	auditoriaRepo  repos.AuditoriaRepo
	inspeccionRepo repos.InspeccionRepo
	catalogoRepo   repos.CatalogoRepo
	notifRepo      repos.NotificacionRepo
	notificaciones NotificacionService
	store          wizard.Store
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	log := logger.NewNop()

	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("abriendo sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.Rubro{},
		&types.Tarifa{},
		&types.Zona{},
		&types.Solicitud{},
		&types.Pago{},
		&types.Documento{},
		&types.Auditoria{},
		&types.Inspeccion{},
		&types.Notificacion{},
	)
	if err != nil {
		t.Fatalf("migrando: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	e := &entorno{
		db:             db,
		log:            log,
		userRepo:       repos.NewUserRepo(db, log),
		solicitudRepo:  repos.NewSolicitudRepo(db, log),
		pagoRepo:       repos.NewPagoRepo(db, log),
		auditoriaRepo:  repos.NewAuditoriaRepo(db, log),
		inspeccionRepo: repos.NewInspeccionRepo(db, log),
		catalogoRepo:   repos.NewCatalogoRepo(db, log),
		notifRepo:      repos.NewNotificacionRepo(db, log),
		store:          wizard.NewMemoryStore(time.Hour, log),
	}
	e.notificaciones = NewNotificacionService(db, log, e.notifRepo, NewLogSender(log))
	return e
}

func (e *entorno) crearUsuario(t *testing.T, rol string) *types.User {
	t.Helper()
	u := &types.User{
		Email:        fmt.Sprintf("u%d-%s@test.pe", time.Now().UnixNano(), rol),
		PasswordHash: "x",
		TipoUsuario:  rol,
		Nombres:      "Prueba",
		IsActive:     true,
	}
	if _, err := e.userRepo.Create(context.Background(), nil, u); err != nil {
		t.Fatalf("creando usuario: %v", err)
	}
	return u
}

func (e *entorno) wizardService() WizardService {
	return NewWizardService(e.db, e.log, e.store, e.solicitudRepo, e.pagoRepo, e.auditoriaRepo, e.catalogoRepo, e.notificaciones)
}

func (e *entorno) solicitudService() SolicitudService {
	return NewSolicitudService(e.db, e.log, e.solicitudRepo, e.auditoriaRepo, e.notificaciones)
}

func (e *entorno) inspeccionService() InspeccionService {
	return NewInspeccionService(e.db, e.log, e.inspeccionRepo, e.solicitudRepo, e.auditoriaRepo, e.notificaciones)
}

func aceptacionCompleta() wizard.Aceptacion {
	return wizard.Aceptacion{
		AceptaCondiciones: true,
		Declaracion1:      true,
		Declaracion2:      true,
		Declaracion3:      true,
	}
}

// presentarYPagar drives a citizen through the whole wizard and returns the
// paid application.
func presentarYPagar(t *testing.T, e *entorno, ws WizardService, usuarioID uint, rubro string) *types.Solicitud {
	t.Helper()
	ctx := context.Background()

	s, err := ws.Iniciar(ctx, usuarioID)
	if err != nil {
		t.Fatalf("Iniciar: %v", err)
	}
	if _, _, err := ws.Paso1Clasificar(ctx, s.ID, usuarioID, rubro); err != nil {
		t.Fatalf("Paso1: %v", err)
	}
	if _, err := ws.Paso2Negocio(ctx, s.ID, usuarioID, wizard.DatosNegocio{
		NombreNegocio:    "Negocio de Prueba",
		DireccionNegocio: "Av. Municipalidad 123",
	}); err != nil {
		t.Fatalf("Paso2: %v", err)
	}
	if _, _, err := ws.Paso3Zonificacion(ctx, s.ID, usuarioID, aceptacionCompleta()); err != nil {
		t.Fatalf("Paso3: %v", err)
	}
	_, solicitud, err := ws.Paso4Presentar(ctx, s.ID, usuarioID)
	if err != nil {
		t.Fatalf("Paso4: %v", err)
	}
	if _, _, err := ws.Paso5Pagar(ctx, s.ID, usuarioID, "yape"); err != nil {
		t.Fatalf("Paso5: %v", err)
	}

	pagada, err := e.solicitudRepo.GetByID(ctx, nil, solicitud.ID)
	if err != nil {
		t.Fatalf("recargando solicitud: %v", err)
	}
	return pagada
}
