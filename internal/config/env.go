package config

import (
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr     string
	GinMode     string
	LogLevel    string
	DSN         string
	CORSOrigins []string
	AutoMigrate bool
}

func init() {
	viper.SetDefault("app_addr", ":8080")
	viper.SetDefault("gin_mode", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("db_host", "127.0.0.1")
	viper.SetDefault("db_port", "3306")
	viper.SetDefault("db_user", "root")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "backoffice")
	viper.SetDefault("cors_allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
	viper.SetDefault("auto_migrate", false)
	viper.AutomaticEnv()
}

// LoadEnv reads configuration from the environment (APP_ADDR, GIN_MODE,
// LOG_LEVEL, DB_DSN or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME,
// CORS_ALLOWED_ORIGINS, AUTO_MIGRATE) and any flags bound to viper.
func LoadEnv() Env {
	dsn := strings.TrimSpace(viper.GetString("db_dsn"))
	if dsn == "" {
		cfg := mysql.NewConfig()
		cfg.User = viper.GetString("db_user")
		cfg.Passwd = viper.GetString("db_password")
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(viper.GetString("db_host"), viper.GetString("db_port"))
		cfg.DBName = viper.GetString("db_name")
		dsn = cfg.FormatDSN()
	}
	if complete, err := withRequiredParams(dsn); err == nil {
		dsn = complete
	}

	origins := []string{}
	for _, o := range strings.Split(viper.GetString("cors_allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:     strings.TrimSpace(viper.GetString("app_addr")),
		GinMode:     strings.TrimSpace(viper.GetString("gin_mode")),
		LogLevel:    strings.TrimSpace(viper.GetString("log_level")),
		DSN:         dsn,
		CORSOrigins: origins,
		AutoMigrate: viper.GetBool("auto_migrate"),
	}
}

// withRequiredParams forces the driver options the repositories depend on
// (DATETIME scanning, matched-row counts, multi-statement migrations) and
// fills in timeouts the DSN leaves unset. Other parameters are kept.
func withRequiredParams(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.MultiStatements = true
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	return cfg.FormatDSN(), nil
}
