package middleware

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// FaultConfig controls artificial latency and failures injected ahead of
// every API handler. Both default to off; they exist so the dashboard's
// loading and error states can be exercised against realistic conditions.
type FaultConfig struct {
	Latency      bool
	MinLatency   time.Duration
	MaxLatency   time.Duration
	ErrorRate    float64 // fraction of requests in [0,1) that fail with 500
	SkipPaths    map[string]bool
	randFloat    func() float64
	sleepBetween func(min, max time.Duration)
}

// DefaultFaultConfig mirrors the 200-500ms window the dashboard was tuned
// against.
func DefaultFaultConfig() FaultConfig {
	return FaultConfig{
		MinLatency: 200 * time.Millisecond,
		MaxLatency: 500 * time.Millisecond,
		SkipPaths:  map[string]bool{"/health": true},
	}
}

// Faults returns middleware that sleeps a random interval and/or fails a
// random fraction of requests, per the config. Failures are reported in
// the standard error envelope so clients exercise their real error paths.
func Faults(cfg FaultConfig) echo.MiddlewareFunc {
	if cfg.MinLatency == 0 && cfg.MaxLatency == 0 {
		d := DefaultFaultConfig()
		cfg.MinLatency = d.MinLatency
		cfg.MaxLatency = d.MaxLatency
	}
	if cfg.randFloat == nil {
		cfg.randFloat = rand.Float64
	}
	if cfg.sleepBetween == nil {
		cfg.sleepBetween = func(min, max time.Duration) {
			time.Sleep(min + time.Duration(rand.Int63n(int64(max-min)+1)))
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.SkipPaths[c.Request().URL.Path] {
				return next(c)
			}
			if cfg.Latency {
				cfg.sleepBetween(cfg.MinLatency, cfg.MaxLatency)
			}
			if cfg.ErrorRate > 0 && cfg.randFloat() < cfg.ErrorRate {
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "Simulated network error",
				})
			}
			return next(c)
		}
	}
}
