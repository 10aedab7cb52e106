package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REMINDER_CHANNELS", " Email, whatsapp ,,")

	conf, err := Load("ledger")
	require.NoError(t, err)

	assert.Equal(t, "ledger", conf.ServiceName)
	assert.Equal(t, "sqlite", conf.DB.Driver)
	assert.Equal(t, 30, conf.Reminder.PaymentTermDays)
	assert.Equal(t, []string{"email", "whatsapp"}, conf.Reminder.Channels)
	assert.Equal(t, 10*time.Second, conf.WhatsApp.Timeout)
}

func TestLoadRejectsNegativeTerm(t *testing.T) {
	t.Setenv("PAYMENT_TERM_DAYS", "-1")

	_, err := Load("ledger")
	assert.Error(t, err)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_LEVEL", "silent")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", false))
	assert.Equal(t, logger.Silent, getEnvAsLogLevel("X_LEVEL", logger.Info))
	assert.Equal(t, []string{"a"}, getEnvAsList("X_MISSING", []string{"a"}))
}
