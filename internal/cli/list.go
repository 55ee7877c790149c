package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/AgentOS/units/internal/catalog"
	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"github.com/spf13/cobra"
)

type unitInfo struct {
	Name       string `json:"name"`
	Label      string `json:"label,omitempty"`
	Phenomenon string `json:"phenomenon"`
	System     string `json:"system"`
	Definition string `json:"definition"`
}

func (a *app) listCmd() *cobra.Command {
	var (
		schemaName string
		phenomenon string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the units of a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, schemaName, phenomenon)
		},
	}
	cmd.Flags().StringVarP(&schemaName, "schema", "s", catalog.SchemaName, "schema to list")
	cmd.Flags().StringVarP(&phenomenon, "phenomenon", "p", "", "only units of this phenomenon, e.g. LENGTH")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, schemaName, phenomenon string) error {
	s, ok := a.engine.Context().GetSchema(schema.NewSchemaKey(schemaName))
	if !ok {
		return fmt.Errorf("%w: %s", schema.ErrSchemaNotFound, schemaName)
	}

	var infos []unitInfo
	for _, item := range s.ItemsOfType(schema.ItemTypeUnit) {
		u := item.(*schema.Unit)
		if phenomenon != "" && !samePhenomenon(u.PhenomenonRef(), phenomenon) {
			continue
		}
		infos = append(infos, unitInfo{
			Name:       u.Name(),
			Label:      u.Label(),
			Phenomenon: u.PhenomenonRef(),
			System:     u.UnitSystemRef(),
			Definition: u.Definition(),
		})
	}

	if a.jsonOut {
		return writeJSON(cmd, infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No units found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tPHENOMENON\tSYSTEM\tDEFINITION")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.Label, info.Phenomenon, info.System, info.Definition)
	}
	return w.Flush()
}

// samePhenomenon compares a possibly alias-qualified reference with a name
func samePhenomenon(ref, name string) bool {
	_, refName := schema.SplitReference(ref)
	return strings.EqualFold(refName, name)
}
