package cmd

import (
	"packetgen/core/loader"

	"github.com/spf13/cobra"
)

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the packets and remap pipelines",
	Long:  `Generates the packet sources and then remaps the schema. A failing pipeline stops the run.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		pf, err := s.packetsFeature()
		if err != nil {
			return err
		}
		rf, err := s.remapFeature(cmd.Context())
		if err != nil {
			return err
		}

		mgr := loader.NewManager(s.logger)
		if err := mgr.Register(pf); err != nil {
			return err
		}
		if err := mgr.Register(rf); err != nil {
			return err
		}
		return mgr.RunAll(cmd.Context())
	},
}

func init() {
	addPacketsFlags(allCmd)
	addRemapFlags(allCmd)
	RootCmd.AddCommand(allCmd)
}
