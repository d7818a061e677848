// ledgerctl tareas de administración del libro de movimientos: migraciones, tokens y correcciones.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sujit-maker/move-sub001/pkg/config"
	"github.com/sujit-maker/move-sub001/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ledgerctl",
		Short:        "Administración del libro de movimientos de contenedores",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newTokenCmd(),
		newCorrectDateCmd(),
		newTransitionsCmd(),
	)
	return root
}

// loadEnv configuración y logger compartidos por los comandos que tocan la BD.
func loadEnv() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	return cfg, log, nil
}
