package handler

import (
	"net/http"
	"sync"

	"tourbook/config"
	"tourbook/di"
	"tourbook/shared/logger"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler is the serverless entrypoint. The application graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
