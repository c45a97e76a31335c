package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/cli/backups"
	"github.com/julianstephens/progresio/internal/cli/entries"
	"github.com/julianstephens/progresio/internal/cli/goals"
	"github.com/julianstephens/progresio/internal/cli/parameters"
	"github.com/julianstephens/progresio/internal/cli/settings"
	"github.com/julianstephens/progresio/internal/cli/stats"
	"github.com/julianstephens/progresio/internal/cli/system"
	"github.com/julianstephens/progresio/internal/config"
	"github.com/julianstephens/progresio/internal/constants"
	apperrors "github.com/julianstephens/progresio/internal/errors"
	"github.com/julianstephens/progresio/internal/keyring"
	"github.com/julianstephens/progresio/internal/logger"
	"github.com/julianstephens/progresio/internal/secure"
	"github.com/julianstephens/progresio/internal/storage"
	"github.com/julianstephens/progresio/internal/storage/postgres"
	"github.com/julianstephens/progresio/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML config file path." type:"string" default:"${config_file}"`
	DB      string `name:"db" help:"SQLite file path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring, environment or .pgpass instead."`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize progresio storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`

	Parameter parameters.ParameterCmd `cmd:"" aliases:"param" help:"Manage tracked parameters."`
	Entry     entries.EntryCmd        `cmd:"" help:"Log and manage daily values."`
	Goal      goals.GoalCmd           `cmd:"" help:"Manage discrete goals."`
	Stats     stats.StatsCmd          `cmd:"" help:"Show streak statistics."`
	Week      stats.WeekCmd           `cmd:"" help:"Show this week's progress."`
	Settings  settings.SettingsCmd    `cmd:"" help:"Manage application settings."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage credentials stored in the OS keyring."`
}

// selfLoading commands open (or create) the store themselves.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"tui":     true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily parameters, streaks and weekly goals."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": config.DefaultFile(),
		},
	)

	cfg, err := config.Load(config.Options{
		File:      CLI.Config,
		Overrides: config.Overrides{Database: CLI.DB, Debug: CLI.Debug},
	})
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir, err := config.Dir()
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		Level:     cfg.LogLevel,
		ConfigDir: configDir,
		LogDir:    cfg.LogDir,
	}); err != nil {
		apperrors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	command := strings.Fields(ctx.Command())[0]
	store, err := openStore(cfg, command == "init")
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := cli.NewContext(store, cfg)
	appCtx.ConfigFile, err = config.ExpandPath(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			if errors.Is(err, storage.ErrNotInitialized) {
				err = apperrors.WithHint(err, "run 'progresio init' to create the database")
			}
			_ = store.Close()
			apperrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "database", store.GetConfigPath())
	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close database", "error", cerr)
	}
	apperrors.Fatal(err)
}

// openStore picks the backend from the configured database and, when
// field encryption is enabled, wraps it with the encrypting decorator.
func openStore(cfg config.Config, createKey bool) (storage.Provider, error) {
	conn := cfg.Database
	if conn == constants.DefaultConfigPath {
		// An unchanged default defers to a connection stored in the keyring.
		if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
			logger.Debug("Using connection string from OS keyring")
			conn = stored
		}
	}

	var store storage.Provider
	if storage.IsPostgres(conn) {
		if storage.HasEmbeddedCredentials(conn) {
			return nil, apperrors.WithHint(storage.ErrEmbeddedCredentials,
				fmt.Sprintf("store the full string with 'progresio keyring set-connection', export %s, or use a .pgpass file", constants.EnvDBConnection))
		}
		store = postgres.New(conn)
	} else {
		path, err := config.ExpandPath(conn)
		if err != nil {
			return nil, err
		}
		store = sqlite.New(path)
	}

	if !cfg.EncryptFields {
		return store, nil
	}
	key, err := secure.LoadKey(cfg.EncryptionKey, createKey)
	if err != nil {
		return nil, apperrors.WithHint(fmt.Errorf("failed to load encryption key: %w", err),
			fmt.Sprintf("set %s or run 'progresio init' to generate a key", constants.EnvEncryptionKey))
	}
	cipher, err := secure.New(key)
	if err != nil {
		return nil, err
	}
	return storage.NewEncrypted(store, cipher), nil
}
