// Package tenants parses tenants command flags and runs one descriptor action.
package tenants

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/polycoder/tenants/internal/platform/cmd"
	apperrors "github.com/polycoder/tenants/internal/platform/errors"
	"github.com/polycoder/tenants/internal/platform/i18n/catalog"
	"github.com/polycoder/tenants/internal/platform/i18n/coverage"
	"github.com/polycoder/tenants/internal/platform/logging"
	"github.com/polycoder/tenants/internal/platform/otel"
	"github.com/polycoder/tenants/internal/services/tenants/app"
	"github.com/polycoder/tenants/internal/services/tenants/domain/descriptor"
	"github.com/polycoder/tenants/internal/services/tenants/i18n"
	"github.com/polycoder/tenants/internal/services/tenants/storage/sqlite"
)

// Actions accepted as the first positional argument.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionShow    = "show"
	ActionHistory = "history"
	ActionLocales = "locales"
)

// Config holds tenants command configuration.
type Config struct {
	DBPath    string `env:"DB_PATH" envDefault:"data/tenants-events.db"`
	Locale    string `env:"LOCALE" envDefault:"en-US"`
	LogMode   string `env:"LOG_MODE" envDefault:"dev"`
	Telemetry otel.Settings

	Action   string
	TenantID string
	Title    string
	Filter   string
}

// ParseConfig parses environment and flags into a Config. The action may come
// before or after the flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cfg.Action = args[0]
		args = args[1:]
	}
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	action := cfg.Action
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite event log")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for validation messages")
	fs.StringVar(&cfg.LogMode, "log-mode", cfg.LogMode, "Log output mode (dev or prod)")
	fs.StringVar(&cfg.TenantID, "id", "", "Tenant id (generated for create when empty)")
	fs.StringVar(&cfg.Title, "title", "", "Tenant title for create and update")
	fs.StringVar(&cfg.Filter, "filter", "", "AIP-160 filter over type, seq and ts for history")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if action == "" && len(rest) > 0 {
		action, rest = rest[0], rest[1:]
	}
	if action == "" {
		return Config{}, fmt.Errorf("an action is required: create, update, delete, show, history, or locales")
	}
	if len(rest) > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	cfg.Action = strings.ToLower(strings.TrimSpace(action))
	switch cfg.Action {
	case ActionCreate, ActionLocales:
	case ActionUpdate, ActionDelete, ActionShow, ActionHistory:
		if strings.TrimSpace(cfg.TenantID) == "" {
			return Config{}, fmt.Errorf("-id is required for %s", cfg.Action)
		}
	default:
		return Config{}, fmt.Errorf("unknown action %q", cfg.Action)
	}
	return cfg, nil
}

// Run executes the configured action and writes its output to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.Action == ActionLocales {
		rep, err := coverage.Build(catalog.Default(), catalog.BaseLocale)
		if err != nil {
			return err
		}
		return coverage.WriteTable(out, rep)
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	options := entrypoint.RunOptions{Telemetry: cfg.Telemetry, Logger: logger}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTenants, options, func(ctx context.Context) error {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer store.Close()

		svc, err := app.NewService(store, i18n.New(nil, cfg.Locale), app.WithLogger(logger))
		if err != nil {
			return err
		}
		return execute(ctx, svc, cfg, out)
	})
}

func execute(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) error {
	switch cfg.Action {
	case ActionCreate:
		tenantID := strings.TrimSpace(cfg.TenantID)
		if tenantID == "" {
			tenantID = app.NewTenantID()
		}
		return handle(ctx, svc, tenantID, descriptor.CreateCommand{Title: cfg.Title}, out)
	case ActionUpdate:
		return handle(ctx, svc, cfg.TenantID, descriptor.UpdateCommand{Title: cfg.Title}, out)
	case ActionDelete:
		return handle(ctx, svc, cfg.TenantID, descriptor.DeleteCommand{}, out)
	case ActionShow:
		snapshot, err := svc.Load(ctx, cfg.TenantID)
		if err != nil {
			return err
		}
		if !snapshot.State.Exists() {
			return apperrors.WithMetadata(apperrors.CodeTenantNotFound, "tenant not found", map[string]string{"TenantID": snapshot.TenantID})
		}
		_, err = fmt.Fprintf(out, "%s\tseq=%d\t%s\n", snapshot.TenantID, snapshot.Seq, snapshot.State)
		return err
	case ActionHistory:
		entries, err := svc.History(ctx, cfg.TenantID, cfg.Filter)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintf(out, "%d\t%s\t%s\n", entry.Seq, entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"), entry.Event); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", cfg.Action)
	}
}

func handle(ctx context.Context, svc *app.Service, tenantID string, cmd descriptor.Command, out io.Writer) error {
	result, err := svc.Handle(ctx, tenantID, cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\tseq=%d\t%s\t%s\n", result.TenantID, result.Seq, result.Event, result.State)
	return err
}

// Describe renders err for the user in locale. Validation failures list each
// localized message on its own line.
func Describe(err error, locale string) string {
	var failures descriptor.ValidationFailures
	if stderrors.As(err, &failures) {
		lines := make([]string, 0, len(failures))
		for _, failure := range failures {
			lines = append(lines, failure.Message)
		}
		return strings.Join(lines, "\n")
	}
	if apperrors.GetCode(err) == apperrors.CodeUnknown {
		return err.Error()
	}
	return apperrors.LocalizedMessage(err, locale)
}
