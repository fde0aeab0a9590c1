package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"cnft/internal/metadata"
)

func metadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Render or check off-chain metadata documents",
	}
	cmd.AddCommand(metadataRenderCmd(), metadataCheckCmd())
	return cmd
}

func renderInput(kind string) (metadata.Input, error) {
	c := appCtx.Config.Collection
	in := metadata.Input{
		Symbol:               c.Symbol,
		Description:          c.Description,
		ExternalURL:          c.ExternalURL,
		SellerFeeBasisPoints: c.SellerFeeBasisPoints(),
		Creators:             c.Creators,
	}
	switch kind {
	case "collection":
		in.Name = c.Name
		in.Image = c.ImageURL
	case "item":
		in.Name = appCtx.Config.Item.Name
		in.Image = appCtx.Config.Item.ImageURL
	default:
		return in, fmt.Errorf("unknown document %q (want collection or item)", kind)
	}
	return in, nil
}

func metadataRenderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render <collection|item>",
		Short: "Render the off-chain JSON for the collection or its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := renderInput(args[0])
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(metadata.Render(in), "", "  ")
			if err != nil {
				return err
			}
			b = append(b, '\n')
			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return renameio.WriteFile(out, b, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func metadataCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fetch the configured metadata URLs and validate them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCtx.Config
			results, err := metadata.CheckAll(cmd.Context(), appCtx.HTTP, []metadata.Target{
				{Label: "collection", URL: cfg.Collection.MetadataURL, Name: cfg.Collection.Name},
				{Label: "item", URL: cfg.Item.MetadataURL, Name: cfg.Item.Name},
			})
			if err != nil {
				return err
			}
			var failed bool
			for _, r := range results {
				if r.Err != nil {
					failed = true
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s FAIL %s: %v\n", r.Label, r.URL, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s ok   %s\n", r.Label, r.URL)
			}
			if failed {
				return errors.New("metadata check failed")
			}
			return nil
		},
	}
}
