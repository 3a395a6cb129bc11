package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadEnvBuildsDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	env := LoadEnv()
	assert.Contains(t, env.DSN, "shop:pw@tcp(db.internal:3306)/backoffice?")
	assert.Contains(t, env.DSN, "parseTime=true")
	assert.Contains(t, env.DSN, "clientFoundRows=true")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, env.CORSOrigins)
	assert.Equal(t, ":8080", env.AppAddr)
}

func TestLoadEnvMergesParamsIntoExplicitDSN(t *testing.T) {
	t.Setenv("DB_DSN", "u:p@tcp(h:1)/x?timeout=2s&clientFoundRows=false")

	dsn := LoadEnv().DSN
	assert.True(t, strings.HasPrefix(dsn, "u:p@tcp(h:1)/x?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "timeout=2s")
	assert.Contains(t, dsn, "readTimeout=30s")
}

func TestLoadEnvKeepsUnparseableDSN(t *testing.T) {
	t.Setenv("DB_DSN", "not a dsn")

	assert.Equal(t, "not a dsn", LoadEnv().DSN)
}

func TestLoadEnvReadsOverrides(t *testing.T) {
	viper.Set("auto_migrate", true)
	t.Cleanup(func() { viper.Set("auto_migrate", false) })

	assert.True(t, LoadEnv().AutoMigrate)
}
