package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujit-maker/move-sub001/pkg/config"
	"github.com/sujit-maker/move-sub001/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		userID  string
		role    string
		secret  string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de operador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch role {
			case jwt.RoleAdmin, jwt.RoleOperations, jwt.RoleViewer:
			default:
				return fmt.Errorf("rol desconocido %q (admin, operaciones, consulta)", role)
			}
			issuer := "container-ledger"
			if secret == "" || minutes <= 0 {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if secret == "" {
					secret = cfg.JWT.Secret
				}
				if minutes <= 0 {
					minutes = cfg.JWT.Expiration
				}
				issuer = cfg.JWT.Issuer
			}
			tok, err := jwt.Generate(secret, userID, role, issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID del usuario (requerido)")
	cmd.Flags().StringVar(&role, "role", jwt.RoleOperations, "admin, operaciones o consulta")
	cmd.Flags().StringVar(&secret, "secret", "", "Secreto HMAC (por defecto JWT_SECRET)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
