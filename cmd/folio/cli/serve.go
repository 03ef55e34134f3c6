package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/server"
	"github.com/foliohq/folio/internal/server/middleware"
	"github.com/foliohq/folio/internal/service"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the folio API server",
		Long:  "Start the HTTP server that exposes the portfolio API and the admin surface.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	logger := newLogger(dev)

	// Configuration problems must stop the process here, before a single
	// request is served: a missing secret or a garbled allowlist entry can
	// never be corrected mid-flight.
	jwtSecret := viper.GetString("auth.jwt_secret")
	if jwtSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set FOLIO_AUTH_JWT_SECRET or add it to folio.yaml)")
	}

	allowlist, err := middleware.ParseAllowlist(allowlistEntries())
	if err != nil {
		return fmt.Errorf("parse admin allowlist: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "data_dir", resolveDataDir())

	authSvc, err := service.NewAuthService(st, authConfig(), logger)
	if err != nil {
		return err
	}

	hasAdmin, err := st.HasAnyAdmin(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin", "error", err)
	}
	if !hasAdmin {
		logger.Warn("no admin account found - run: folio admin create")
	}

	cfg := server.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.Allowlist = allowlist
	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	if base := viper.GetString("server.base_url"); base != "" {
		cfg.BaseURL = base
	}
	if n := viper.GetInt("auth.admin_rate_per_minute"); n > 0 {
		cfg.RatePerMinute = n
	}
	if n := viper.GetInt("auth.login_rate_per_minute"); n > 0 {
		cfg.LoginRatePerMinute = n
	}
	cfg.ShutdownTimeout = durationOr(viper.GetDuration("server.shutdown_timeout"), cfg.ShutdownTimeout)

	srv := server.New(cfg, st, authSvc, audit.NewRecorder(st, logger), logger)

	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ OpenAPI:    http://%s:%d/openapi.json\n", host, port)
	fmt.Printf("→ Health:     http://%s:%d/healthz\n", host, port)
	if !allowlist.Empty() {
		fmt.Println("→ Admin surface restricted by IP allowlist")
	}
	fmt.Println()

	return srv.ListenAndServe()
}
