package cmd

import (
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/items"

	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Serve the in-memory items CRUD API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := items.NewMemoryStore()

		b := withCommonSurface(newBuilder("items", config.DefaultCrudPort)).
			AddGinRoutes(items.NewHandler(store).Routes()...)

		return run(cmd.Context(), b)
	},
}
