package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	rules "github.com/sujit-maker/move-sub001/internal/domain/movement"
)

func newTransitionsCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Muestra la tabla de transiciones permitidas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if status != "" {
				s := entity.Status(strings.ToUpper(strings.TrimSpace(status)))
				if !rules.IsKnown(s) {
					return fmt.Errorf("estado desconocido %q", status)
				}
				fmt.Fprintf(out, "%s -> %s\n", s, joinStatuses(rules.AllowedNext(s)))
				return nil
			}
			for _, s := range rules.Statuses() {
				fmt.Fprintf(out, "%-18s -> %s\n", s, joinStatuses(rules.AllowedNext(s)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Solo las salidas de este estado")
	return cmd
}

func joinStatuses(list []entity.Status) string {
	if len(list) == 0 {
		return "(terminal)"
	}
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
