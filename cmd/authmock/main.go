// Command authmock runs a mock OAuth2/OIDC authorization server for
// local testing of clients performing an authorization-code flow. It is
// a disposable development fixture: endpoints serve fixed, configurable
// data and perform no real credential validation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexjbarnes/authmock/internal/auth"
	"github.com/alexjbarnes/authmock/internal/config"
	"github.com/alexjbarnes/authmock/internal/keys"
	"github.com/alexjbarnes/authmock/internal/logging"
	"github.com/alexjbarnes/authmock/internal/server"
)

var Version = "dev"

func main() {
	// Handle genkey subcommand before config loading.
	if len(os.Args) > 1 && os.Args[1] == "genkey" {
		genKey()
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// genKey prints a freshly generated private and public JWK pair. The
// private one is suitable as JWK_FILE material.
func genKey() {
	kid := strconv.Itoa(rand.Int()) //nolint:gosec

	private, public, err := keys.Generate(kid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	privJSON, err := json.MarshalIndent(private, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	pubJSON, err := json.MarshalIndent(public, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("private JWK:\n%s\n\npublic JWK:\n%s\n", privJSON, pubJSON)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)
	logger.Info("authmock starting",
		slog.String("version", Version),
		slog.String("listen", cfg.ListenAddr),
		slog.String("issuer", cfg.IssuerURL),
	)

	var signer *keys.Keys
	if cfg.JWKFile != "" {
		signer, err = keys.Load(cfg.JWKFile, cfg.IssuerURL)
	} else {
		signer, err = keys.LoadDefault(cfg.IssuerURL)
	}
	if err != nil {
		return fmt.Errorf("loading signing key: %w", err)
	}
	logger.Debug("signing key loaded", slog.String("kid", signer.KeyID()))

	fx := auth.Fixture{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AuthCode:     cfg.AuthCode,
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		RedirectURI:  cfg.RedirectURI,
	}

	store := auth.NewStore(&auth.Code{
		Code:        cfg.AuthCode,
		ClientID:    cfg.ClientID,
		RedirectURI: cfg.RedirectURI,
		Scope:       "openid profile",
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	})

	handler := server.NewMux(server.MuxConfig{
		Store:     store,
		Fixture:   fx,
		Keys:      signer,
		Logger:    logger,
		IssuerURL: cfg.IssuerURL,
		BaseURL:   cfg.BaseURL,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		logger.Info("mock auth server listening", slog.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	return g.Wait()
}
