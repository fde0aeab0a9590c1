package commands

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"cnft/internal/services/mint"
)

func parseKeys(in []string) ([]solana.PublicKey, error) {
	out := make([]solana.PublicKey, 0, len(in))
	for _, s := range in {
		pk, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, pk)
	}
	return out, nil
}

func mintCmd() *cobra.Command {
	var treeAddr, collectionMint string
	cmd := &cobra.Command{
		Use:   "mint --tree <address> [--collection <mint>] <recipient>...",
		Short: "Mint one compressed NFT to each recipient",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			treeKey, err := solana.PublicKeyFromBase58(treeAddr)
			if err != nil {
				return fmt.Errorf("--tree: %w", err)
			}
			var collectionKey solana.PublicKey
			if collectionMint != "" {
				if collectionKey, err = solana.PublicKeyFromBase58(collectionMint); err != nil {
					return fmt.Errorf("--collection: %w", err)
				}
			}
			recipients, err := parseKeys(args)
			if err != nil {
				return err
			}
			payer, err := loadPayer()
			if err != nil {
				return err
			}
			defer payer.Wipe()

			cfg := appCtx.Config
			res, err := appCtx.Mints.Mint(cmd.Context(), payer, mint.Request{
				Tree:       treeKey,
				Collection: collectionKey,
				Recipients: recipients,
				Item: mint.Item{
					Name:                 cfg.Item.Name,
					Symbol:               cfg.Collection.Symbol,
					URI:                  cfg.Item.MetadataURL,
					SellerFeeBasisPoints: cfg.Collection.SellerFeeBasisPoints(),
					Creators:             cfg.Collection.Creators,
				},
			})
			w := cmd.OutOrStdout()
			for _, r := range res.Receipts {
				fmt.Fprintf(w, "%s  %s\n", r.Owner, r.Signature)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Minted %d compressed NFTs (run %s)\n", len(res.Receipts), res.RunID)
			return nil
		},
	}
	cmd.Flags().StringVar(&treeAddr, "tree", "", "Merkle tree address")
	cmd.Flags().StringVar(&collectionMint, "collection", "", "collection mint to verify the NFTs into")
	_ = cmd.MarkFlagRequired("tree")
	return cmd
}

func receiptsCmd() *cobra.Command {
	var treeAddr string
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List recorded mints",
		RunE: func(cmd *cobra.Command, args []string) error {
			var treeKey solana.PublicKey
			if treeAddr != "" {
				pk, err := solana.PublicKeyFromBase58(treeAddr)
				if err != nil {
					return fmt.Errorf("--tree: %w", err)
				}
				treeKey = pk
			}
			rs, err := appCtx.Mints.Receipts(treeKey)
			if err != nil {
				return err
			}
			for _, r := range rs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
					r.MintedAt.Format("2006-01-02 15:04:05"), r.Tree, r.Owner, r.Signature)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&treeAddr, "tree", "", "only list mints into this tree")
	return cmd
}
