package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "arverify-node/docs"
	"arverify-node/internal/common/logger"
	"arverify-node/internal/version"
)

// @title           ArVerify Node API
// @version         1.0
// @description     Tip-gated identity attestation for Arweave addresses.
// @BasePath        /

// @tag.name verification
// @tag.description Tip check, Google authorization and attestation

// @tag.name system
// @tag.description Liveness and metrics

var rootCmd = &cobra.Command{
	Use:           "arverify-node",
	Short:         "ArVerify attestation node",
	Long:          "Issues Arweave verification attestations for addresses that tipped the node and proved a verified Google email.",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, addressCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("arverify-node failed")
		os.Exit(1)
	}
}
