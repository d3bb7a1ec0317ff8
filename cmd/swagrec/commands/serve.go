package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erraggy/swagrec/internal/config"
	"github.com/erraggy/swagrec/internal/webapi"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction HTTP API",
		Long: `Serve an HTTP JSON API:

  POST /api/reference   upload a document (or {"url": "..."}) and get a session
  GET  /api/endpoints   list the endpoints of a session (?session=...)
  POST /api/generate    {"session": "...", "endpoints": ["GET /pets"]} returns the document
  GET  /healthz         liveness`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	flags := cmd.Flags()
	flags.String("addr", webapi.DefaultAddr, "Listen address")
	flags.Duration("session-ttl", webapi.DefaultSessionTTL, "How long uploaded documents are kept")
	flags.Int("max-sessions", webapi.DefaultMaxSessions, "Maximum number of stored documents")
	flags.StringSlice("allowed-origins", nil, "CORS origins (default: any)")
	flags.Bool("require-json", false, "Reject URL references not served as JSON")
	flags.Bool("allow-private-ips", false, "Let URL references reach loopback, private and link-local addresses")
	flags.String("user-agent", "", "User-Agent for URL requests")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := webapi.New(webapi.Config{
		Addr:            cfg.Serve.Addr,
		SessionTTL:      cfg.Serve.SessionTTL,
		MaxSessions:     cfg.Serve.MaxSessions,
		AllowedOrigins:  cfg.Serve.AllowedOrigins,
		RequireJSON:     cfg.Serve.RequireJSON,
		AllowPrivateIPs: cfg.Serve.AllowPrivateIPs,
		UserAgent:       cfg.UserAgent,
		Logger:          parserLogger(cmd),
	})
	return srv.ListenAndServe(ctx)
}
