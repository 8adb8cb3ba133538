package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neisdata/neis/internal/aggregate"
	"github.com/neisdata/neis/internal/config"
	"github.com/neisdata/neis/internal/dataset"
	"github.com/neisdata/neis/internal/server"
	"github.com/neisdata/neis/internal/service"
)

const banner = `
 _  _ ___ ___ ___
| \| | __|_ _/ __|
| .' | _| | |\__ \
|_|\_|___|___|___/
`

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the NEIS API server",
		Long:  "Start the HTTP server that exposes the national and regional energy data endpoints.",
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
	fmt.Print(banner)
	fmt.Println()

	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	// 1. Load the dataset
	provider := dataset.NewProvider(cfg.Dataset, logger)
	if err := provider.Load(context.Background()); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	engine := aggregate.NewEngine(provider)

	// 2. Domain services, constructor-injected (no globals)
	authority := service.NewTokenAuthority(cfg.TokenTTL())
	overrides := service.NewOverrideStore()
	resolver := service.NewEmissionsResolver(overrides, engine)

	adminSecret := viper.GetString("auth.admin_secret")
	if adminSecret == "" {
		adminSecret = cfg.Auth.AdminSecret
	}
	if adminSecret == "" {
		adminSecret = "neis-dev-secret-change-me"
		logger.Warn("auth.admin_secret not set, using development default")
	}
	operator := service.NewOperatorAuth(adminSecret)

	// 3. Build and start the HTTP server
	srvCfg := server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.ShutdownTimeout(),
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
	}
	srv := server.New(srvCfg, provider, engine, authority, overrides, resolver, operator, logger)

	snap := provider.Snapshot()
	fmt.Printf("→ NEIS API\n")
	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ OpenAPI:  http://%s:%d/openapi.json\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:   http://%s:%d/healthz\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Dataset:  %d generation rows, %d emissions rows, %d regions\n",
		len(snap.Generation), len(snap.Emissions), len(engine.KnownRegions()))
	fmt.Println()

	return srv.ListenAndServe()
}
