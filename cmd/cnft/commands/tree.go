package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cnft/internal/services/tree"
)

func treeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage Bubblegum Merkle trees",
	}
	cmd.AddCommand(treeCostCmd(), treeCreateCmd(), treeListCmd())
	return cmd
}

func configuredShape() tree.Shape {
	t := appCtx.Config.Tree
	return tree.Shape{
		MaxDepth:      t.MaxDepth,
		MaxBufferSize: t.MaxBufferSize,
		CanopyDepth:   t.CanopyDepth,
		Public:        t.Public,
	}
}

func treeCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost",
		Short: "Print the account size and rent of the configured tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			shape := configuredShape()
			size, lamports, err := appCtx.Trees.Cost(cmd.Context(), shape)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "depth %d, buffer %d, canopy %d: %d bytes, %s\n",
				shape.MaxDepth, shape.MaxBufferSize, shape.CanopyDepth, size, formatSOL(lamports))
			return nil
		},
	}
}

func treeCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Allocate a Merkle tree with the configured shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			payer, err := loadPayer()
			if err != nil {
				return err
			}
			defer payer.Wipe()

			rec, err := appCtx.Trees.Create(cmd.Context(), payer, configuredShape())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Tree created.\n")
			fmt.Fprintf(w, "Address:     %s\n", rec.Address)
			fmt.Fprintf(w, "Tree config: %s\n", rec.TreeConfig)
			fmt.Fprintf(w, "Capacity:    %d\n", rec.Capacity())
			fmt.Fprintf(w, "Rent:        %s\n", formatSOL(rec.Lamports))
			fmt.Fprintf(w, "Signature:   %s\n", rec.Signature)
			return nil
		},
	}
}

func treeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := appCtx.Trees.List()
			if err != nil {
				return err
			}
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  depth=%d buffer=%d canopy=%d public=%t\n",
					r.Address, r.MaxDepth, r.MaxBufferSize, r.CanopyDepth, r.Public)
			}
			return nil
		},
	}
}
