package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type description struct {
	Item      string  `json:"item"`
	Type      string  `json:"type"`
	Dimension string  `json:"dimension"`
	Terms     string  `json:"terms"`
	Factor    float64 `json:"factor"`
	Offset    float64 `json:"offset"`
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe ITEM",
		Short: "Show how a unit, constant or phenomenon reduces to base items",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runDescribe,
	}
}

func (a *app) runDescribe(cmd *cobra.Command, args []string) error {
	key, err := parseKey(args[0])
	if err != nil {
		return err
	}
	d, err := a.engine.Converter().Decompose(key)
	if err != nil {
		return err
	}
	item, _ := a.engine.Context().GetItem(key)

	desc := description{
		Item:      d.Item.String(),
		Type:      item.ItemType().String(),
		Dimension: d.Dimension.String(),
		Terms:     d.Terms.String(),
		Factor:    d.ToBase.Factor,
		Offset:    d.ToBase.Offset,
	}
	if a.jsonOut {
		return writeJSON(cmd, desc)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s)\n", desc.Item, desc.Type)
	fmt.Fprintf(w, "  dimension: %s\n", desc.Dimension)
	fmt.Fprintf(w, "  base:      %s\n", desc.Terms)
	fmt.Fprintf(w, "  to base:   %s\n", d.ToBase)
	return nil
}
