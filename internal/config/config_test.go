package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9010", conf.Address)
	assert.Equal(t, "config", conf.TuningDir)
	assert.Equal(t, 30*time.Minute, conf.SessionTTL)
	assert.Equal(t, "cogtrain.results", conf.NatsSubjectPrefix)
	assert.Empty(t, conf.FirebaseURL)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("COGTRAIN_ADDRESS", ":8080")
	t.Setenv("COGTRAIN_TUNING_PROFILE", "clinic")
	t.Setenv("COGTRAIN_SESSION_TTL", "5m")
	t.Setenv("COGTRAIN_FIREBASE_URL", "https://example.firebaseio.com")

	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", conf.Address)
	assert.Equal(t, "clinic", conf.TuningProfile)
	assert.Equal(t, 5*time.Minute, conf.SessionTTL)
	assert.Equal(t, "https://example.firebaseio.com", conf.FirebaseURL)
}

func TestParseRejectsMalformedDuration(t *testing.T) {
	t.Setenv("COGTRAIN_REPORT_TIMEOUT", "soon")

	_, err := Parse()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	conf := &Config{Timezone: "UTC"}
	assert.Equal(t, time.UTC, conf.Location())

	conf.Timezone = "Nowhere/Invalid"
	assert.Equal(t, time.Local, conf.Location())
}
