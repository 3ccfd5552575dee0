package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("BRT", -3*60*60)

	log := NewWithWriter(&buf, loc).Named("database")
	log.Info("db_migration_step", zap.String("migration_step", "create_table"), zap.Int("step", 2))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "db_migration_step", entry["msg"])
	assert.Equal(t, "database", entry["component"])
	assert.Equal(t, "create_table", entry["migration_step"])
	assert.Equal(t, float64(2), entry["step"])

	ts, err := time.Parse(time.RFC3339Nano, entry["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, -3*60*60, offset)
}

func TestNewLevel(t *testing.T) {
	log, err := New("warn", time.UTC)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.ErrorLevel))

	_, err = New("loud", time.UTC)
	assert.Error(t, err)
}
