package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/cuenta-regresiva/backend/internal/api"
	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/cuenta-regresiva/backend/internal/session"
	"github.com/cuenta-regresiva/backend/internal/web"
)

const shutdownTimeout = 10 * time.Second

func addServeCmd(rootCmd *cobra.Command) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	cfg := a.cfg

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionMgr := session.NewManager(a.doc.Cities(), clock.System{}, cfg.Sessions.MaxSessions)

	// Start background session cleanup
	go clock.Every(ctx, cfg.CleanupInterval(), func(context.Context) error {
		sessionMgr.CleanupOldSessions(cfg.SessionTimeout())
		return nil
	})

	e := echo.New()
	e.HideBanner = true
	api.SetupMiddleware(e, api.MiddlewareOptions{
		RequestLogging:   cfg.Advanced.EnableRequestLogging,
		Compression:      cfg.Advanced.EnableCompression,
		CompressionLevel: cfg.Advanced.CompressionLevel,
		EnableCORS:       cfg.Server.EnableCORS,
		AllowOrigins:     cfg.Server.AllowOrigins,
	})

	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Page:            a.page,
		Sessions:        sessionMgr,
		Store:           a.store,
		Version:         Version,
		RefreshInterval: cfg.RefreshInterval(),
		Lifetime:        ctx,
	}))

	embeddedMode := web.HasEmbeddedFiles()
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			fmt.Printf("Warning: failed to register static routes: %v\n", err)
		}
	}

	// WriteTimeout stays zero: streams hold their response open.
	s := &http.Server{
		Addr:        cfg.GetServerAddr(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	printBanner(a, embeddedMode)

	return serveUntilDone(ctx, e, s)
}

// serveUntilDone runs s with e as its handler until ctx is cancelled, then
// drains in-flight requests before returning.
func serveUntilDone(ctx context.Context, e *echo.Echo, s *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.StartServer(s)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// e.Shutdown only knows echo's own servers, so stop s directly.
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printBanner(a *app, embeddedMode bool) {
	cfg := a.cfg
	profile := a.page.Profile()
	mode := "API only"
	if embeddedMode {
		mode = "Embedded page"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Cuenta Regresiva Server                         ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("║  Profile:    %-45s║\n", profile.ID+" ("+profile.Event.Date.Format("2006-01-02")+")")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Images:    %-46s║\n", cfg.Assets.ImageRoot)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}
}
