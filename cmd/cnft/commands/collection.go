package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cnft/internal/services/collection"
)

func collectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Manage the collection NFT",
	}
	cmd.AddCommand(collectionCreateCmd(), collectionListCmd())
	return cmd
}

func collectionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Mint the configured collection NFT",
		RunE: func(cmd *cobra.Command, args []string) error {
			payer, err := loadPayer()
			if err != nil {
				return err
			}
			defer payer.Wipe()

			c := appCtx.Config.Collection
			rec, err := appCtx.Collections.Create(cmd.Context(), payer, collection.Input{
				Name:                 c.Name,
				Symbol:               c.Symbol,
				URI:                  c.MetadataURL,
				SellerFeeBasisPoints: c.SellerFeeBasisPoints(),
				Creators:             c.Creators,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Collection created.\n")
			fmt.Fprintf(w, "Mint:           %s\n", rec.Mint)
			fmt.Fprintf(w, "Metadata:       %s\n", rec.Metadata)
			fmt.Fprintf(w, "Master edition: %s\n", rec.MasterEdition)
			fmt.Fprintf(w, "Signature:      %s\n", rec.Signature)
			return nil
		},
	}
}

func collectionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := appCtx.Collections.List()
			if err != nil {
				return err
			}
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-32s  %s\n", r.Mint, r.Name, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
