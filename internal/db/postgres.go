package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
	"github.com/Yamir213/sistema-licencias-ica/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "licencias_ica", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
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
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	fks := []struct {
		table, name, ddl string
	}{
		{"solicitudes", "fk_solicitudes_usuario_id", `
			ALTER TABLE "solicitudes"
			ADD CONSTRAINT "fk_solicitudes_usuario_id"
			FOREIGN KEY ("usuario_id")
			REFERENCES "usuarios"("id")
			ON DELETE CASCADE`},
		{"pagos", "fk_pagos_solicitud_id", `
			ALTER TABLE "pagos"
			ADD CONSTRAINT "fk_pagos_solicitud_id"
			FOREIGN KEY ("solicitud_id")
			REFERENCES "solicitudes"("id")
			ON DELETE CASCADE`},
		{"documentos", "fk_documentos_solicitud_id", `
			ALTER TABLE "documentos"
			ADD CONSTRAINT "fk_documentos_solicitud_id"
			FOREIGN KEY ("solicitud_id")
			REFERENCES "solicitudes"("id")
			ON DELETE CASCADE`},
		{"auditorias", "fk_auditorias_solicitud_id", `
			ALTER TABLE "auditorias"
			ADD CONSTRAINT "fk_auditorias_solicitud_id"
			FOREIGN KEY ("solicitud_id")
			REFERENCES "solicitudes"("id")
			ON DELETE CASCADE`},
		{"inspecciones", "fk_inspecciones_solicitud_id", `
			ALTER TABLE "inspecciones"
			ADD CONSTRAINT "fk_inspecciones_solicitud_id"
			FOREIGN KEY ("solicitud_id")
			REFERENCES "solicitudes"("id")
			ON DELETE CASCADE`},
		{"notificaciones", "fk_notificaciones_usuario_id", `
			ALTER TABLE "notificaciones"
			ADD CONSTRAINT "fk_notificaciones_usuario_id"
			FOREIGN KEY ("usuario_id")
			REFERENCES "usuarios"("id")
			ON DELETE CASCADE`},
	}
	for _, fk := range fks {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, fk.table, fk.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("Failed to drop %s: %w", fk.name, err)
		}
		if err := s.db.Exec(fk.ddl).Error; err != nil {
			return fmt.Errorf("Failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
