package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dripcast/internal/auth"
	"dripcast/internal/config"
	"dripcast/internal/library"
	"dripcast/internal/server"
	"dripcast/internal/source"
)

func main() {
	logger := log.New(os.Stdout, "dripcast ", log.LstdFlags|log.Lmsgprefix)

	config.LoadEnvFile(logger)

	listenAddr := config.ListenAddr()
	if err := config.ValidateListenAddr(listenAddr); err != nil {
		logger.Fatalf("invalid listen address %q: %v", listenAddr, err)
	}

	var src source.Source
	var audioRoot string

	manifestPath, hosted, err := config.ResolveAssetManifest()
	if err != nil {
		logger.Fatalf("resolve asset manifest: %v", err)
	}
	if hosted {
		src = source.NewManifest(manifestPath, logger)
	} else {
		audioRoot, err = config.ResolveAudioRoot()
		if err != nil {
			logger.Fatalf("resolve audio root: %v", err)
		}
		src = source.NewLocal(audioRoot, logger)
	}

	metadataPath, err := config.ResolveMetadataFile(audioRoot)
	if err != nil {
		logger.Fatalf("resolve metadata file: %v", err)
	}

	var validator server.TokenValidator
	if token, ok := config.ResolveToken(); ok {
		validator = auth.Static(token)
	} else {
		tokenFile, enabled, err := config.ResolveTokenFile()
		if err != nil {
			logger.Fatalf("resolve token file: %v", err)
		}
		if enabled {
			store, err := auth.NewTokenStore(tokenFile, config.RefreshDebounce(), logger)
			if err != nil {
				logger.Fatalf("initialise token store: %v", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Printf("error closing token store: %v", err)
				}
			}()
			validator = store
		} else {
			logger.Printf("warning: no access token configured; endpoints are open")
		}
	}

	lib := library.New(src, metadataPath, logger)

	handler := server.New(lib, validator, logger)
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("graceful shutdown error: %v", err)
		}
	}()

	if hosted {
		logger.Printf("listening on %s (asset manifest: %s)", listenAddr, manifestPath)
	} else {
		logger.Printf("listening on %s (audio directory: %s)", listenAddr, audioRoot)
	}
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("http server error: %v", err)
	}
	logger.Println("shutdown complete")
}
