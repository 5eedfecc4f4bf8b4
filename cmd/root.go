package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"storefront/config"
	"storefront/libs"
	"storefront/repositories"
	"storefront/services"
	"storefront/views"
)

// app is the client stack shared by every subcommand of one invocation.
type app struct {
	cfg    *config.Config
	output string

	logger   *slog.Logger
	redis    *redis.Client
	sessions *services.SessionStore
	auth     *services.AuthService
	products *services.ProductService
	cart     *services.CartService
	render   *views.Renderer
}

// NewRootCommand builds the storefront CLI.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.LoadConfig()}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront client: sign in, browse ranked products and manage your cart",
		Long: `storefront talks to the storefront API gateway.

Your session is kept between runs (in a local file by default, or in Redis
with --session-backend redis) and is sent as a bearer token on cart calls.

Examples:
  storefront login --email demo@example.com
  storefront products list --sort-by price --max-price 100
  storefront cart add prod_007 "Wireless Mouse" 49.99 --quantity 2
  storefront gateway serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.APIBaseURL, "api-url", a.cfg.APIBaseURL, "gateway base URL (STOREFRONT_API_URL)")
	flags.StringVar(&a.cfg.SessionBackend, "session-backend", a.cfg.SessionBackend, "where the session is kept: file, redis or memory")
	flags.StringVar(&a.cfg.SessionDir, "session-dir", a.cfg.SessionDir, "directory of the session file")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug, info, warn or error")
	flags.StringVarP(&a.output, "output", "o", views.FormatTable, "output format: table, json or yaml")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newDemoUsersCommand(a),
		newVerifyCommand(a),
		newProductsCommand(a),
		newCartCommand(a),
		newGatewayCommand(a),
	)
	return root
}

// Execute runs the CLI and prints any error the way views present it.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", presentError(err))
	}
	return err
}

// init wires the client stack and restores the persisted session.
func (a *app) init(cmd *cobra.Command) error {
	if a.sessions != nil {
		return nil
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = config.NewLogger(a.cfg, cmd.ErrOrStderr())

	render, err := views.NewRenderer(cmd.OutOrStdout(), a.output)
	if err != nil {
		return err
	}
	a.render = render

	repo, err := a.sessionRepository(cmd.Context())
	if err != nil {
		return err
	}

	a.sessions = services.NewSessionStore(repo, a.logger)
	client := libs.NewHTTPClient(a.cfg.APIBaseURL, a.sessions, libs.WithLogger(a.logger))
	a.auth = services.NewAuthService(client, a.sessions, a.logger)
	a.products = services.NewProductService(client)
	a.cart = services.NewCartService(client)

	a.sessions.Restore(cmd.Context())
	return nil
}

func (a *app) sessionRepository(ctx context.Context) (repositories.SessionRepository, error) {
	switch a.cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := config.ConnectRedis(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.redis = client
		return repositories.NewRedisSessionRepository(client, a.cfg.SessionKeyPrefix), nil
	case config.SessionBackendMemory:
		return repositories.NewMemorySessionRepository(), nil
	default:
		return repositories.NewFileSessionRepository(a.cfg.SessionFile()), nil
	}
}

func (a *app) close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

// withApp adapts a RunE that needs the client stack.
func withApp(a *app, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.init(cmd); err != nil {
			return err
		}
		return run(cmd, args)
	}
}
