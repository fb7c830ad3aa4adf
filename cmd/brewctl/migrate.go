package main

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/brewlogic/BrewLogic/internal/pkg/database"
	"github.com/brewlogic/BrewLogic/internal/pkg/env"
)

func migrateCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect SQL schema migrations",
	}
	cmd.PersistentFlags().StringVar(&source, "source", "file://migrations", "migration source URL")

	open := func() (*migrate.Migrate, error) {
		log.Printf("Connecting to database: %s@%s:%s/%s",
			env.GetEnv("DB_USER", "brewlogic"),
			env.GetEnv("DB_HOST", "localhost"),
			env.GetEnv("DB_PORT", "5432"),
			env.GetEnv("DB_NAME", "brewlogic"),
		)
		m, err := migrate.New(source, database.MigrationURL())
		if err != nil {
			return nil, fmt.Errorf("init migrations: %w", err)
		}
		return m, nil
	}
	run := func(fn func(m *migrate.Migrate) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer func() {
				if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
					log.Printf("Closing migration resources failed: %v, %v", sourceErr, dbErr)
				}
			}()
			return fn(m)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(m *migrate.Migrate) error {
			err := m.Up()
			switch {
			case errors.Is(err, migrate.ErrNoChange):
				log.Println("No change: database is up to date")
			case err != nil:
				return fmt.Errorf("migrate up: %w", err)
			default:
				log.Println("Migrations applied")
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: run(func(m *migrate.Migrate) error {
			if err := m.Steps(-1); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			log.Println("Last migration rolled back")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "goto N",
		Short: "Migrate to version N",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return run(func(m *migrate.Migrate) error {
				err := m.Migrate(uint(version))
				switch {
				case errors.Is(err, migrate.ErrNoChange):
					log.Printf("No change: database is already at version %d", version)
				case err != nil:
					return fmt.Errorf("migrate to %d: %w", version, err)
				default:
					log.Printf("Migrated to version %d", version)
				}
				return nil
			})(c, args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: run(func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Println("No migrations have been applied")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read version: %w", err)
			}
			dirtyStatus := ""
			if dirty {
				dirtyStatus = " (dirty)"
			}
			log.Printf("Current migration version: %d%s", version, dirtyStatus)
			return nil
		}),
	})

	return cmd
}
