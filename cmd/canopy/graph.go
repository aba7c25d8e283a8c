package main

import (
	"fmt"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/viz"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the waypoint demo tree as a Mermaid diagram",
	Long: `Constructs the waypoint tree, ticks it once so lazily built branches
materialize, and outputs a Mermaid diagram (graph TD) of its structure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tc := canopy.NewContext()
		h, err := buildWaypointTree()(tc)
		if err != nil {
			return err
		}
		defer h.Close()

		m := defaultMission()
		b := &Blackboard{Robot: newRobot(m.Robot.Speed, m.Robot.DischargeRate), Destinations: m.Destinations}
		if _, err := h.Tick(b); err != nil {
			return err
		}

		tree, err := viz.Build(tc)
		if err != nil {
			return err
		}
		fmt.Print(viz.Mermaid(tree))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
