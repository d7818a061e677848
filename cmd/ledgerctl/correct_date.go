package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
	"github.com/sujit-maker/move-sub001/internal/application/movement"
	"github.com/sujit-maker/move-sub001/internal/infrastructure/postgres"
)

func newCorrectDateCmd() *cobra.Command {
	var (
		id     int64
		date   string
		userID string
	)
	cmd := &cobra.Command{
		Use:   "correct-date",
		Short: "Corrige la fecha de una fila del libro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := movement.NewDateCorrectionUseCase(postgres.NewTxRunner(pool), nil, log.Component("date_correction"))
			out, err := uc.CorrectDateFromRequest(ctx, userID, id, dto.CorrectDateRequest{Date: date})
			if err != nil {
				return err
			}
			if out.CurrentStatusChanged {
				fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", out.Warning)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "ID de la fila (requerido)")
	cmd.Flags().StringVar(&date, "date", "", "Nueva fecha YYYY-MM-DD o RFC3339 (requerido)")
	cmd.Flags().StringVar(&userID, "user", "ledgerctl", "Usuario que registra la corrección")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
