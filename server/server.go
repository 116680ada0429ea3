package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Start runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, db *gorm.DB, logger *logrus.Logger, addr string) {
	h := &handler{
		router: mux.NewRouter(),
		db:     db,
		logger: logger,
	}
	s := &http.Server{
		Addr:         addr,
		Handler:      h,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	m := &middleware{
		db:     db,
		logger: logger,
	}
	h.initRouter(m)

	go func() {
		err := s.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Error starting server: ", err)
		}
	}()

	logger.Info("Server started on ", addr)

	waitForShutdown(ctx, s, logger)
	logger.Info("Exiting...")
}

func waitForShutdown(ctx context.Context, s *http.Server, logger *logrus.Logger) {
	<-ctx.Done()
	logger.Info("Trying graceful shutdown")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctxShutDown); err != nil {
		logger.Errorf("Server shutdown failed: %s", err)
		return
	}
	logger.Info("Server stopped")
}
