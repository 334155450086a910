package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Synthetic dataset shape. Everything is generated in-process at boot;
	// the same seed always produces the same dataset.
	Seed             uint64 `mapstructure:"SEED"`
	PatientCount     int    `mapstructure:"PATIENT_COUNT"`
	AppointmentCount int    `mapstructure:"APPOINTMENT_COUNT"`

	// Scheduling grid window.
	ScheduleStartHour   int `mapstructure:"SCHEDULE_START_HOUR"`
	ScheduleEndHour     int `mapstructure:"SCHEDULE_END_HOUR"`
	ScheduleSlotMinutes int `mapstructure:"SCHEDULE_SLOT_MINUTES"`

	// Fault injection for demos and client resilience testing.
	FakeLatency   bool    `mapstructure:"FAKE_LATENCY"`
	FakeErrorRate float64 `mapstructure:"FAKE_ERROR_RATE"`

	// E2E enables test-only endpoints such as the notification emitter.
	E2E bool `mapstructure:"E2E"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SEED", 24681357)
	v.SetDefault("PATIENT_COUNT", 50)
	v.SetDefault("APPOINTMENT_COUNT", 120)
	v.SetDefault("SCHEDULE_START_HOUR", 8)
	v.SetDefault("SCHEDULE_END_HOUR", 18)
	v.SetDefault("SCHEDULE_SLOT_MINUTES", 30)
	v.SetDefault("FAKE_LATENCY", false)
	v.SetDefault("FAKE_ERROR_RATE", 0.0)
	v.SetDefault("E2E", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SEED")
	v.BindEnv("PATIENT_COUNT")
	v.BindEnv("APPOINTMENT_COUNT")
	v.BindEnv("SCHEDULE_START_HOUR")
	v.BindEnv("SCHEDULE_END_HOUR")
	v.BindEnv("SCHEDULE_SLOT_MINUTES")
	v.BindEnv("FAKE_LATENCY")
	v.BindEnv("FAKE_ERROR_RATE")
	v.BindEnv("E2E")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsTest() bool {
	return c.Env == "test"
}

// DebugEndpointsEnabled reports whether test-only routes (notification
// emitter) should be registered.
func (c *Config) DebugEndpointsEnabled() bool {
	return c.E2E || c.IsTest()
}

// Validate checks that the configuration describes a usable scheduling
// grid. A slot granularity that leaves a partial slot at the end of the
// day window is a configuration error, not something to silently round.
func (c *Config) Validate() error {
	if c.ScheduleStartHour < 0 || c.ScheduleStartHour > 23 {
		return fmt.Errorf("SCHEDULE_START_HOUR must be in [0,23], got %d", c.ScheduleStartHour)
	}
	if c.ScheduleEndHour < 1 || c.ScheduleEndHour > 24 {
		return fmt.Errorf("SCHEDULE_END_HOUR must be in [1,24], got %d", c.ScheduleEndHour)
	}
	if c.ScheduleStartHour >= c.ScheduleEndHour {
		return fmt.Errorf("SCHEDULE_START_HOUR (%d) must be before SCHEDULE_END_HOUR (%d)",
			c.ScheduleStartHour, c.ScheduleEndHour)
	}
	if c.ScheduleSlotMinutes <= 0 {
		return fmt.Errorf("SCHEDULE_SLOT_MINUTES must be positive, got %d", c.ScheduleSlotMinutes)
	}
	windowMinutes := (c.ScheduleEndHour - c.ScheduleStartHour) * 60
	if windowMinutes%c.ScheduleSlotMinutes != 0 {
		return fmt.Errorf("SCHEDULE_SLOT_MINUTES (%d) must divide the %d-minute day window evenly",
			c.ScheduleSlotMinutes, windowMinutes)
	}
	if c.FakeErrorRate < 0 || c.FakeErrorRate >= 1 {
		return fmt.Errorf("FAKE_ERROR_RATE must be in [0,1), got %v", c.FakeErrorRate)
	}
	if c.PatientCount <= 0 {
		return fmt.Errorf("PATIENT_COUNT must be positive, got %d", c.PatientCount)
	}
	if c.AppointmentCount < 0 {
		return fmt.Errorf("APPOINTMENT_COUNT must not be negative, got %d", c.AppointmentCount)
	}
	return nil
}
