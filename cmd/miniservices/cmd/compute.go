package cmd

import (
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/compute"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/middleware"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"

	"github.com/spf13/cobra"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Serve GET /compute, a CPU bound summation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b := newBuilder("compute", config.DefaultComputePort).
			WithOption(func(a *builder) error {
				pool := compute.NewPool(a.Config.GetComputeConfig(), a.Logger)
				a.AddWorkerServices(pool)
				a.AddGinMiddleware(rest.NewMiddleware(rest.AllGroups, middleware.RequestLogger(a.Logger)))
				a.AddGinRoutes(compute.NewHandler(pool).Routes()...)
				return nil
			}).
			WithNoRoute(compute.NotFound)

		return run(cmd.Context(), b)
	},
}
