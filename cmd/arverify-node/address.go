package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arverify-node/internal/common/config"
	"arverify-node/internal/platform/arweave"
)

var flagKeyfile string

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the node wallet address",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{}
		if flagKeyfile != "" {
			cfg.Arweave.Keyfile = flagKeyfile
		} else {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
		}

		raw, err := cfg.KeyfileJSON()
		if err != nil {
			return err
		}
		wallet, err := arweave.LoadWallet(raw)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), wallet.Address())
		return nil
	},
}

func init() {
	addressCmd.Flags().StringVar(&flagKeyfile, "keyfile", "", "Path to the JWK keyfile (defaults to KEYFILE)")
}
