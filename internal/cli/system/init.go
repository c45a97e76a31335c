package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/progresio/internal/backup"
	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/config"
)

type InitCmd struct {
	Force bool `help:"Back up and delete the existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsSQLite() {
			return errors.New("--force is only supported for SQLite databases")
		}
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized progresio storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigFile != "" {
		if _, err := os.Stat(ctx.ConfigFile); errors.Is(err, os.ErrNotExist) {
			if err := config.Write(ctx.ConfigFile, ctx.Config); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			ctx.Printf("Wrote config file: %s\n", ctx.ConfigFile)
		}
	}
	if ctx.Config.EncryptFields {
		ctx.Println("Field encryption is enabled; the key is kept in the OS keyring.")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		// Some other error occurred while checking the database; surface it to the user
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	info, err := backup.NewManager(dbPath).Create()
	if err != nil {
		return fmt.Errorf("failed to back up existing database: %w", err)
	}
	ctx.Printf("Backed up existing database as: %s\n", info.Name)

	// Close first to release the file
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
