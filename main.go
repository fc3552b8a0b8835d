// Command spacesync starts the virtual space synchronization server.
//
// It exposes a websocket endpoint carrying all session traffic plus a
// small read-only HTTP API over the space catalog. Configuration comes
// from the environment (see the config package); a .env file in the
// working directory is honored.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridverse/spacesync/api"
	"github.com/gridverse/spacesync/auth"
	"github.com/gridverse/spacesync/catalog"
	"github.com/gridverse/spacesync/config"
	"github.com/gridverse/spacesync/logging"
	"github.com/gridverse/spacesync/space/room"
	"github.com/gridverse/spacesync/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "SpaceSync Server"
)

// Flags override the environment when set.
var (
	addrFlag      = flag.String("addr", "", "Listen address (overrides SPACESYNC_ADDR)")
	spacesDirFlag = flag.String("spaces-dir", "", "Space definitions directory (overrides SPACESYNC_SPACES_DIR)")
	debugFlag     = flag.Bool("debug", false, "Enable debug logging")
	showVersion   = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *spacesDirFlag != "" {
		cfg.SpacesDir = *spacesDirFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}

	log := logging.New(cfg.LogFile, cfg.Debug)
	defer log.Sync()

	log.Infow("starting", "app", AppName, "version", Version, "addr", cfg.Addr)

	// Spaces come from a local directory or an upstream directory
	// service, never both.
	var (
		directory catalog.Directory
		manager   *catalog.Manager
	)
	if cfg.CatalogURL != "" {
		directory = catalog.NewHTTPDirectory(cfg.CatalogURL, 5*time.Second)
		log.Infow("using upstream space directory", "url", cfg.CatalogURL)
	} else {
		manager, err = catalog.NewManager(cfg.SpacesDir)
		if err != nil {
			log.Fatalw("space catalog unavailable", "dir", cfg.SpacesDir, "error", err)
		}
		directory = manager
		log.Infow("using local space catalog", "dir", cfg.SpacesDir)
	}

	verifier := auth.NewJWTVerifier([]byte(cfg.JWTSecret))
	registry := room.NewRegistry(log)
	gateway := websocket.NewGateway(verifier, directory, registry, log)
	server := api.NewServer(manager, gateway, registry)

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     server,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("HTTP server listening on %s", cfg.Addr)
		log.Infof("WebSocket: ws://%s/ws", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("HTTP server failed", "error", err)
		}
	}()

	sig := <-stop
	log.Infow("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTTL)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnw("HTTP server shutdown error", "error", err)
	}
	log.Info("server stopped")
}
