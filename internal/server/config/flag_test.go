package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server",
		"-a", ":7777",
		"-d", "postgres://u:p@h:5432/db",
		"-s", "flag-secret",
		"-t", "15",
		"-r", "60",
		"-f", "s3",
		"-o", "/var/uploads",
		"-b", "flag-bucket",
		"-x", "localhost:6379",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":7777")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@h:5432/db")
	assert.Equal(t, c.SecretKey, "flag-secret")
	assert.Equal(t, c.AccessTokenValidityDuration, 15*time.Minute)
	assert.Equal(t, c.RefreshTokenValidityDuration, 60*time.Minute)
	assert.Equal(t, c.StorageType, "s3")
	assert.Equal(t, c.UploadDir, "/var/uploads")
	assert.Equal(t, c.S3Bucket, "flag-bucket")
	assert.Equal(t, c.RedisAddr, "localhost:6379")
}

func TestParseFlags_KeepsDefaultsWithoutFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.AccessTokenValidityDuration, 30*time.Minute)
}
