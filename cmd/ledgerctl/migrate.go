package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujit-maker/move-sub001/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema (embebidas en el binario)",
	}
	cmd.AddCommand(
		migrateSubcommand("up", "Aplica las migraciones pendientes", (*postgres.Migrator).Up),
		migrateSubcommand("down", "Revierte la última migración", (*postgres.Migrator).Down),
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(mg *postgres.Migrator) error {
					v, dirty, err := mg.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(*postgres.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(mg *postgres.Migrator) error {
				if err := run(mg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", use)
				return nil
			})
		},
	}
}

func withMigrator(fn func(*postgres.Migrator) error) error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}
	mg, err := postgres.NewMigrator(cfg.DB, log.Component("migrate"))
	if err != nil {
		return err
	}
	defer mg.Close()
	return fn(mg)
}
