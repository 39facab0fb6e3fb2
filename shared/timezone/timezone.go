package timezone

import (
	"time"
	_ "time/tzdata" //nolint:revive

	"tourbook/config"

	"github.com/jinzhu/now"
	"github.com/rs/zerolog/log"
)

const dateLayout = time.DateOnly

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Qatar', 'UTC', 'Europe/London'")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Debug().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// SetLocation overrides the application timezone.
func SetLocation(loc *time.Location) {
	if loc != nil {
		appLocation = loc
	}
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")

		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay returns midnight of t's calendar day in the application timezone.
func StartOfDay(t time.Time) time.Time {
	return now.With(ToAppTime(t)).BeginningOfDay()
}

// Today returns the current calendar date (YYYY-MM-DD) in the application timezone.
func Today() string {
	return StartOfDay(time.Now()).Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight in the application timezone.
func ParseDate(value string) (time.Time, error) {
	cfg := &now.Config{
		TimeLocation: GetLocation(),
		TimeFormats:  []string{dateLayout},
	}

	t, err := cfg.Parse(value)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return now.With(t).BeginningOfDay(), nil
}
