package cmd

import (
	"context"

	"packetgen/core/artifact"
	"packetgen/feature/translation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	precedenceFlag string
	matchFlag      string
	storeFlag      string
)

// remapCmd represents the remap command
var remapCmd = &cobra.Command{
	Use:   "remap",
	Short: "Translate an obfuscated protobuf schema",
	Long: `Parses the "old -> new" translation file, merges it with the persisted
override table and writes the translated schema next to the original.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		f, err := s.remapFeature(cmd.Context())
		if err != nil {
			return err
		}
		return f.Run(cmd.Context())
	},
}

type remapFeature struct {
	svc     *translation.Service
	checker artifact.StaleChecker
	check   bool
	logger  *zap.Logger
}

func (f *remapFeature) Name() string    { return "remap" }
func (f *remapFeature) IsEnabled() bool { return true }

func (f *remapFeature) Run(ctx context.Context) error {
	if f.check {
		stale, err := f.svc.Check(ctx, f.checker)
		if err != nil {
			return err
		}
		return staleError(f.logger, f.Name(), stale)
	}
	_, err := f.svc.Run(ctx)
	return err
}

func addRemapFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&precedenceFlag, "precedence", "", "Which side wins conflicting keys (persisted, fresh)")
	cmd.Flags().StringVar(&matchFlag, "match", "", "Substitution mode (literal, token)")
	cmd.Flags().StringVar(&storeFlag, "store", "", "Override store (file, database)")
}

func init() {
	addRemapFlags(remapCmd)
	RootCmd.AddCommand(remapCmd)
}
