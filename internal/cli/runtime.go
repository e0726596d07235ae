package cli

import (
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/config"
	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/curtisos/curtisos/internal/llm"
	"github.com/curtisos/curtisos/internal/logging"
	"github.com/curtisos/curtisos/internal/mail"
	"github.com/curtisos/curtisos/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Runtime is everything a command needs: configuration, logger, an open
// database and the wired services.
type Runtime struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *sql.DB
	Services *service.Services
}

func openRuntime(cmd *cobra.Command, configPath string) (*Runtime, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	database, err := db.OpenDB(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.AI.LogCalls {
		observer = llm.NewZapObserver(log)
	}
	model, err := llm.New(ctx, cfg.AI, observer)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("building ai client: %w", err)
	}

	var provider mail.Provider
	if cfg.Mail.Configured() {
		gmail, err := mail.NewGmailProvider(ctx, cfg.Mail)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("building gmail client: %w", err)
		}
		provider = gmail
	}

	log.Debug("runtime ready",
		zap.String("ai_provider", string(cfg.AI.Provider)),
		zap.Bool("mail_configured", provider != nil))

	return &Runtime{
		Config: cfg,
		Log:    log,
		DB:     database,
		Services: service.New(service.Deps{
			DB:         database,
			Advisor:    intelligence.NewAdvisor(model, log),
			Mail:       provider,
			MailConfig: cfg.Mail,
			Log:        log,
			Observer:   service.NewZapUseCaseObserver(log),
		}),
	}, nil
}

// Close releases the database and flushes the logger.
func (r *Runtime) Close() error {
	// Sync on stderr fails with EINVAL on some platforms.
	_ = r.Log.Sync()
	return r.DB.Close()
}
