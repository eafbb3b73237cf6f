package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"attio-sync/attio"
	"attio-sync/config"
	"attio-sync/database"
	"attio-sync/handlers"
	"attio-sync/ingest"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

type ServeOptions struct {
	Port       int
	NoMigrate  bool
	DebugMode  bool
	ShutdownIn time.Duration
}

func NewServeCommand(root *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = opts.Port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 8000, "listen port (env PORT)")
	cmd.Flags().BoolVar(&opts.NoMigrate, "no-migrate", false, "skip creating tables on startup")
	cmd.Flags().BoolVar(&opts.DebugMode, "debug", false, "run gin in debug mode")
	cmd.Flags().DurationVar(&opts.ShutdownIn, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	return cmd
}

// NewEngine wires the router, handlers and gin middleware for cfg.
func NewEngine(cfg config.Config, db *gorm.DB) *gin.Engine {
	store := database.NewStore(db)
	client := attio.NewClient(cfg.AttioToken,
		attio.WithBaseURL(cfg.AttioBaseURL),
		attio.WithTimeout(cfg.AttioTimeout),
	)
	matcher := ingest.Matcher{
		CompanyObjectID: cfg.CompanyObjectID,
		FastTrackListID: cfg.FastTrackListID,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	handlers.New(matcher, ingest.NewRouter(client, store), store, cfg.WebhookSecret).Register(r)
	return r
}

func runServe(ctx context.Context, cfg config.Config, opts *ServeOptions) error {
	log := klog.FromContext(ctx)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)
	log.Info("database connected", "dialect", db.Dialector.Name())

	if !opts.NoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	if opts.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewEngine(cfg, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting attio-sync", "addr", srv.Addr, "companyObject", cfg.CompanyObjectID, "fastTrackList", cfg.FastTrackListID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownIn)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
