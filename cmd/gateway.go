package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"storefront/api"
	"storefront/config"
)

func newGatewayCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Run the demo API gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var port string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve auth, products and carts in memory",
		Long: `Serve the storefront API with three demo accounts, a ranked demo catalog
and per-user carts kept in memory. Swagger UI is at /swagger/index.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.GatewayPort = port
			}
			if _, set := os.LookupEnv("LOG_LEVEL"); !set && !cmd.Flags().Changed("log-level") {
				a.cfg.LogLevel = "info"
			}
			logger := config.NewLogger(a.cfg, cmd.ErrOrStderr())

			handler, err := api.NewHandler(a.cfg, logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + a.cfg.GatewayPort,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("gateway starting", "addr", srv.Addr, "env", a.cfg.AppEnv)
				logger.Info("swagger UI", "url", "http://localhost:"+a.cfg.GatewayPort+"/swagger/index.html")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				logger.Info("gateway shutting down")
				return srv.Shutdown(ctx)
			}
		},
	}
	serve.Flags().StringVar(&port, "port", "", "listen port (APP_PORT, default 8080)")

	cmd.AddCommand(serve)
	return cmd
}
