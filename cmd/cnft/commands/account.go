package commands

import (
	"fmt"
	"strconv"

	solana "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func formatSOL(lamports uint64) string {
	return strconv.FormatFloat(float64(lamports)/float64(solana.LAMPORTS_PER_SOL), 'f', -1, 64) + " SOL"
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Print an account balance (default: the payer)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account solana.PublicKey
			if len(args) == 1 {
				pk, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return err
				}
				account = pk
			} else {
				k, err := loadPayer()
				if err != nil {
					return err
				}
				account = k.PublicKey()
				k.Wipe()
			}
			lamports, err := appCtx.Chain.Balance(cmd.Context(), account)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", account, formatSOL(lamports))
			return nil
		},
	}
}

func airdropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "airdrop [sol]",
		Short: "Request SOL for the payer from a devnet or testnet faucet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := 1.0
			if len(args) == 1 {
				f, err := strconv.ParseFloat(args[0], 64)
				if err != nil || f <= 0 {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				amount = f
			}
			k, err := loadPayer()
			if err != nil {
				return err
			}
			account := k.PublicKey()
			k.Wipe()

			lamports := uint64(amount * float64(solana.LAMPORTS_PER_SOL))
			sig, err := appCtx.Chain.RequestAirdrop(cmd.Context(), account, lamports)
			if err != nil {
				return err
			}
			if err := appCtx.Chain.WaitForConfirmation(cmd.Context(), sig); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Airdropped %s to %s\nSignature: %s\n", formatSOL(lamports), account, sig)
			return nil
		},
	}
}
