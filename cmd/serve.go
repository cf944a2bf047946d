package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

// newRouter assembles the API routes, CORS, and the optional static web
// root. The CORS posture matches the original static-file server: any
// configured origin may read the dashboard data.
func newRouter(srv *server, corsOrigins []string, webRoot string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/records", srv.handleRecords)
		r.Get("/kpis", srv.handleKPIs)
		r.Get("/views", srv.handleViewList)
		r.Get("/views/{view}", srv.handleView)
		r.Get("/economics", srv.handleEconomics)
		r.Get("/compare", srv.handleCompare)
		r.Get("/studies/{id}", srv.handleStudy)
	})
	if webRoot != "" {
		r.Handle("/*", http.FileServer(http.Dir(webRoot)))
	}
	return r
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long:  "Loads all study records, then serves the dashboard API and an optional static web root. Partial load failures drop individual records; the server refuses to start with no data at all.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := newApp(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: load dashboard")
		}

		srv := newServer(app)
		r := newRouter(srv, cfg.Server.CORSOrigins, cfg.Server.WebRoot)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			httpSrv.Shutdown(ctx)
		}()

		zap.L().Info("starting dashboard server",
			zap.Int("port", port),
			zap.Int("studies", len(app.Records())),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
