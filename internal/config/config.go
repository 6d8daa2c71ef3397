package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort               string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL            string `env:"DATABASE_URL,required"`
	AuthJWTSecret          string `env:"AUTH_JWT_SECRET,required"`
	RedisAddr              string `env:"REDIS_ADDR"`
	RedisPassword          string `env:"REDIS_PASSWORD"`
	RedisDB                int    `env:"REDIS_DB" envDefault:"0"`
	ProfileCacheTTLMinutes int    `env:"PROFILE_CACHE_TTL_MINUTES" envDefault:"15"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
