// Package timezone keeps every calendar computation in the application
// timezone (APP_TIMEZONE, default Asia/Qatar).
//
//	now := timezone.Now()                        // current time in app timezone
//	today := timezone.Today()                    // "2025-01-31"
//	day, err := timezone.ParseDate("2025-02-01") // midnight, app timezone
//	formatted := timezone.Format(t, time.RFC3339)
//
// The location is loaded when the package is imported. Use IANA names.
package timezone
