package cli

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type conversionResult struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Factor float64   `json:"factor"`
	Offset float64   `json:"offset"`
	Input  []float64 `json:"input"`
	Output []float64 `json:"output"`
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert FROM TO VALUE...",
		Short: "Convert values from one unit to another",
		Long: `Converts each VALUE from unit FROM to unit TO.
Units are catalog names such as MILE or KM/HR, or qualified as Schema.Name.`,
		Example: "  units convert MILE KM 1 26.2\n  units convert CELSIUS FAHRENHEIT -- -40",
		Args:    cobra.MinimumNArgs(3),
		RunE:    a.runConvert,
	}
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	from, err := parseKey(args[0])
	if err != nil {
		return err
	}
	to, err := parseKey(args[1])
	if err != nil {
		return err
	}

	values := make([]float64, 0, len(args)-2)
	for _, raw := range args[2:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", raw, err)
		}
		values = append(values, v)
	}

	m, err := a.engine.Resolve(from, to)
	if err != nil {
		return err
	}
	out, err := a.engine.ConvertMany(from, to, values)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return writeJSON(cmd, conversionResult{
			From:   from.String(),
			To:     to.String(),
			Factor: m.Factor,
			Offset: m.Offset,
			Input:  values,
			Output: out,
		})
	}

	w := cmd.OutOrStdout()
	for i, v := range values {
		fmt.Fprintf(w, "%s %s = %s %s\n", formatFloat(v), from.Name, formatFloat(out[i]), to.Name)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
