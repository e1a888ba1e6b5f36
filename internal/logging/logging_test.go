package logging_test

import (
	"testing"

	"job-board-api/config"
	"job-board-api/internal/logging"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	require.NoError(t, logging.Configure(config.LogConfig{Level: "debug", Format: "json"}))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	require.NoError(t, logging.Configure(config.LogConfig{Level: "warn", Format: "text"}))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	assert.Error(t, logging.Configure(config.LogConfig{Level: "loud"}))
	assert.Error(t, logging.Configure(config.LogConfig{Level: "info", Format: "xml"}))
}
