package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Anonyfox/chatoyant/modelinfo"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the provider's available models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return err
		}

		table := uitable.New()
		table.MaxColWidth = 60
		table.AddRow("MODEL", "OWNER", "CONTEXT")
		for _, m := range models {
			ctxWindow := "-"
			if n, ok := modelinfo.ContextWindow(m.ID); ok {
				ctxWindow = fmt.Sprintf("%d", n)
			}
			table.AddRow(m.ID, m.OwnedBy, ctxWindow)
		}
		fmt.Println(table.String())
		return nil
	},
}
