package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"packetgen/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir    string
	buildVersion string
	checkFlag    bool
	publishFlag  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "packetgen",
	Short: "Packet and schema code generator",
	Long: `packetgen turns a packet id table into Go constants, name lookups and a
message registry, and remaps an obfuscated protobuf schema through a
translation table that is persisted between builds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing the .env file")
	RootCmd.PersistentFlags().StringVar(&buildVersion, "version", "", "Game version substituted into {version} path templates (overrides BUILD_VERSION)")
	RootCmd.PersistentFlags().BoolVar(&checkFlag, "check", false, "Report out of date outputs without writing anything")
	RootCmd.PersistentFlags().BoolVar(&publishFlag, "publish", false, "Also upload generated artifacts to the configured bucket")
}
