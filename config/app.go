package config

type App struct {
	Port        string `env:"APP_PORT" default:"4000"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Env         string `env:"APP_ENV" default:"dev"`
	RateLimit   int    `env:"RATE_LIMIT" default:"120"`
}
