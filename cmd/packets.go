package cmd

import (
	"context"

	"packetgen/core/artifact"
	"packetgen/feature/packets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var orderingFlag string

// packetsCmd represents the packets command
var packetsCmd = &cobra.Command{
	Use:   "packets",
	Short: "Generate packet id constants, names and registry",
	Long: `Reads the packet id table and writes packet_ids.go, packet_names.go and
packet_registry.go. Ids in the exclusion list are left out of the registry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		f, err := s.packetsFeature()
		if err != nil {
			return err
		}
		return f.Run(cmd.Context())
	},
}

type packetsFeature struct {
	svc     *packets.Service
	checker artifact.StaleChecker
	check   bool
	logger  *zap.Logger
}

func (f *packetsFeature) Name() string    { return "packets" }
func (f *packetsFeature) IsEnabled() bool { return true }

func (f *packetsFeature) Run(ctx context.Context) error {
	if f.check {
		stale, err := f.svc.Check(ctx, f.checker)
		if err != nil {
			return err
		}
		return staleError(f.logger, f.Name(), stale)
	}
	_, err := f.svc.Generate(ctx)
	return err
}

func addPacketsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&orderingFlag, "ordering", "", "Entry order of the generated files (id, name, insertion)")
}

func init() {
	addPacketsFlags(packetsCmd)
	RootCmd.AddCommand(packetsCmd)
}
