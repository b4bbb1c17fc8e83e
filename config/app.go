package config

import "os"

type AppConfig struct {
	Env        string // test, dev or prod
	ListenAddr string
}

func NewAppConfig() AppConfig {

	conf := AppConfig{
		Env:        os.Getenv("APP_ENV"),
		ListenAddr: envDefault("LISTEN_ADDR", ":8080"),
	}

	return conf
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
