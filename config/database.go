package config

import "strconv"

type PgsqlConnectionConf struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type DatabaseConfig struct {
	Pgsql PgsqlConnectionConf
}

func DatabaseConf() *DatabaseConfig {

	port, err := strconv.Atoi(envDefault("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	return &DatabaseConfig{
		Pgsql: PgsqlConnectionConf{
			Host:     envDefault("DB_HOST", "db"),
			Port:     port,
			Database: envDefault("DB_NAME", "postgres"),
			Username: envDefault("DB_USER", "postgres"),
			Password: envDefault("DB_PASSWORD", "password"),
		},
	}
}
