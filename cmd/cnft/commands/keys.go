package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the payer keypair and store it encrypted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			k, err := appCtx.Signer.Generate(passphrase, force)
			if err != nil {
				return err
			}
			defer k.Wipe()
			fmt.Fprintf(cmd.OutOrStdout(), "Keypair created.\nAddress: %s\n", k.PublicKey())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing keystore")
	return cmd
}

func importKeypairCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import-keypair <file>",
		Short: "Import a Solana CLI keypair file into the keystore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			k, err := appCtx.Signer.Import(passphrase, args[0], force)
			if err != nil {
				return err
			}
			defer k.Wipe()
			fmt.Fprintf(cmd.OutOrStdout(), "Keypair imported.\nAddress: %s\n", k.PublicKey())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing keystore")
	return cmd
}

func exportKeypairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-keypair <file>",
		Short: "Write the payer keypair as a Solana CLI keypair file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if err := appCtx.Signer.Export(passphrase, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keypair written to %s\n", args[0])
			return nil
		},
	}
}

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the payer address",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := loadPayer()
			if err != nil {
				return err
			}
			defer k.Wipe()
			fmt.Fprintln(cmd.OutOrStdout(), k.PublicKey())
			return nil
		},
	}
}
