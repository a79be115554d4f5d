package app

import (
	"strings"
	"time"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/utils"
)

type Config struct {
	Addr             string
	JWTSecretKey     string
	AccessTokenTTL   time.Duration
	WizardSessionTTL time.Duration
	SessionBackend   string
	AllowOrigins     []string
}

func LoadConfig(log *logger.Logger) Config {
	addr := utils.GetEnv("SERVER_ADDR", ":8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	wizardTTLSeconds := utils.GetEnvAsInt("WIZARD_SESSION_TTL", 3600, log)
	sessionBackend := utils.GetEnv("SESSION_BACKEND", "memory", log)
	origins := utils.GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173", log)

	return Config{
		Addr:             addr,
		JWTSecretKey:     jwtSecretKey,
		AccessTokenTTL:   time.Duration(accessTokenTTLSeconds) * time.Second,
		WizardSessionTTL: time.Duration(wizardTTLSeconds) * time.Second,
		SessionBackend:   sessionBackend,
		AllowOrigins:     strings.Split(origins, ","),
	}
}
