package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"cnft/internal/app"
	"cnft/internal/crypto"
	"cnft/internal/log"
)

var (
	home       string
	configPath string
	passphrase string
	rpcURL     string
	logLevel   string
	appCtx     *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "cnft",
		Short:         "Create collections and Merkle trees and mint compressed NFTs on Solana",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".cnft")
			}
			cfg, err := app.LoadConfig(home, configPath, app.Overrides{
				RPCURL:   rpcURL,
				LogLevel: logLevel,
			})
			if err != nil {
				return err
			}
			log.Configure(log.Config{Level: cfg.LogLevel, Console: true})

			appCtx, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Chain.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.cnft)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the keystore")
	root.PersistentFlags().StringVar(&rpcURL, "rpc", "", "JSON-RPC endpoint (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		keygenCmd(),
		importKeypairCmd(),
		exportKeypairCmd(),
		addressCmd(),
		balanceCmd(),
		airdropCmd(),
		configCmd(),
		metadataCmd(),
		collectionCmd(),
		treeCmd(),
		mintCmd(),
		receiptsCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// loadPayer returns the payer keypair, asking for a passphrase only when the
// keystore is in use.
func loadPayer() (*crypto.Keypair, error) {
	if appCtx.Config.KeypairPath == "" && passphrase == "" {
		return nil, errors.New("passphrase required (-p) or set keypair_path")
	}
	return appCtx.Signer.Load(passphrase)
}
