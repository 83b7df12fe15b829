package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Startup925/realestate/config"
	"github.com/Startup925/realestate/obs"
	"github.com/Startup925/realestate/routes"
	"github.com/Startup925/realestate/services"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

const serviceName = "realestate-api"

func main() {
	rootCmd := &cobra.Command{
		Use:          "realestate",
		Short:        "Property rental marketplace API",
		SilenceUsage: true,
		RunE:         serve,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if _, err := openDB(cfg); err != nil {
					return err
				}
				golog.Info("schema is up to date")
				return nil
			},
		},
		createAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createAdminCmd() *cobra.Command {
	var email, phone, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			// the CLI issues no tokens
			tokens := utils.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, storage.NewMemoryRefreshStore())
			user, err := services.NewAccounts(storage.New(db), tokens).CreateAdmin(cmd.Context(), email, phone, password, name)
			if err != nil {
				return err
			}
			fmt.Printf("created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&phone, "phone", "", "10 digit mobile number")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "full name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func openDB(cfg config.Config) (*gorm.DB, error) {
	db, err := storage.Open(cfg.DBDriver, cfg.DBConnectionString)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	store := storage.New(db)

	refresh, err := storage.NewRefreshStore(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	tokens := utils.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, refresh)

	shutdownTracer, err := obs.InitTracer(serviceName, cfg.Env, cfg.OTELEndpoint)
	if err != nil {
		golog.Warnf("tracing disabled: %v", err)
		shutdownTracer = func(context.Context) error { return nil }
	}
	notifier, closeNotifier := services.NewNotifier(cfg.RabbitURL, cfg.EventsExchange)
	metrics := obs.NewMetrics()

	random := services.NewRandomSource(time.Now().UnixNano())
	karza := services.MockKarza{Random: random, Latency: cfg.MockLatency}
	pipeline := services.NewPipeline(services.Collaborators{
		NationalID: karza,
		TaxID:      karza,
		Face:       karza,
		Locker:     services.MockDigiLocker{Latency: cfg.MockLatency},
		Employer:   services.MockMCARegistry{Random: random, Latency: cfg.MockLatency},
	}, cfg.KYCTimeout, cfg.KYCRetries)

	accounts := services.NewAccounts(store, tokens)
	app := routes.NewApp(&routes.Handlers{
		Accounts:  accounts,
		Catalog:   services.NewCatalog(store, services.MockGeocoder{Random: random}),
		KYC:       services.NewKYCService(store, pipeline, notifier, metrics),
		Interests: services.NewInterests(store, store, notifier, metrics),
		Dashboard: services.NewDashboard(store),
		Admin:     services.NewAdmin(store, store),
		Places:    services.MockPlaces{},
		Tokens:    tokens,
		Audit:     store,
		Metrics:   metrics,
		Ping:      store.Ping,
	})
	app.Logger().SetLevel("info")

	iris.RegisterOnInterrupt(func() {
		timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeNotifier(); err != nil {
			golog.Warnf("close rabbitmq: %v", err)
		}
		if err := shutdownTracer(timeout); err != nil {
			golog.Warnf("flush traces: %v", err)
		}
	})

	golog.Infof("Server starting on %s", cfg.Addr())
	return app.Listen(cfg.Addr(), iris.WithoutServerError(iris.ErrServerClosed))
}
