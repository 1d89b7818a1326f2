package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.ServerPort)
				assert.Equal(t, ":8080", cfg.Addr())
				assert.Equal(t, "Europe/Sofia", cfg.Timezone)
				assert.Equal(t, loyalty.AwardOnBooking, cfg.LoyaltyAwardOn)
				assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00", "18:00"}, cfg.SlotTemplate)
				assert.Equal(t, []string{"0 10 * * *", "*/30 9-18 * * *"}, cfg.ReminderSchedules)
				assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
				assert.False(t, cfg.Twilio.Enabled())
				assert.False(t, cfg.SMTP.Enabled())
				assert.False(t, cfg.S3.Enabled())
			},
		},
		{
			name: "nested prefixes",
			env: map[string]string{
				"TWILIO_ACCOUNT_SID":  "AC123",
				"TWILIO_AUTH_TOKEN":   "secret",
				"TWILIO_PHONE_NUMBER": "+359000000",
				"SMTP_HOST":           "smtp.example.com",
				"SMTP_FROM":           "shop@example.com",
				"SMTP_PORT":           "2525",
				"LOYALTY_AWARD_ON":    "completion",
				"SESSION_TTL":         "30m",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Twilio.Enabled())
				assert.True(t, cfg.SMTP.Enabled())
				assert.Equal(t, 2525, cfg.SMTP.Port)
				assert.Equal(t, loyalty.AwardOnCompletion, cfg.LoyaltyAwardOn)
				assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
			},
		},
		{
			name:    "unknown award policy",
			env:     map[string]string{"LOYALTY_AWARD_ON": "visit"},
			wantErr: true,
		},
		{
			name:    "bad timezone",
			env:     map[string]string{"SHOP_TIMEZONE": "Mars/Olympus"},
			wantErr: true,
		},
		{
			name:    "unordered slot template",
			env:     map[string]string{"SLOT_TEMPLATE": "10:00,09:00"},
			wantErr: true,
		},
		{
			name:    "malformed slot",
			env:     map[string]string{"SLOT_TEMPLATE": "9am"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
