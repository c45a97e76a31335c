package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/progresio/internal/backup"
	"github.com/julianstephens/progresio/internal/config"
	"github.com/julianstephens/progresio/internal/logger"
	"github.com/julianstephens/progresio/internal/storage"
	"github.com/julianstephens/progresio/internal/tracker"
)

// Context is passed to every command's Run method.
type Context struct {
	Store   storage.Provider
	Tracker *tracker.Service
	Config  config.Config
	// ConfigFile is the YAML file the config was read from.
	ConfigFile string
	// Out receives command output; nil means stdout.
	Out io.Writer
}

// NewContext wires a tracker over store.
func NewContext(store storage.Provider, cfg config.Config) *Context {
	return &Context{
		Store:   store,
		Tracker: tracker.New(store),
		Config:  cfg,
	}
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.writer(), format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.writer(), args...)
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v any) error {
	enc := json.NewEncoder(c.writer())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// IsSQLite reports whether the store is a local SQLite file.
func (c *Context) IsSQLite() bool {
	return !storage.IsPostgres(c.Store.GetConfigPath())
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
