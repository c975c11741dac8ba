package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/partwire/internal/app/composition"
)

type orderOptions struct {
	jsonOutput bool
}

func newOrderCmd(root *rootFlags) *cobra.Command {
	opts := &orderOptions{}

	cmd := &cobra.Command{
		Use:   "order <manifest>",
		Short: "Print the resolved implementation and listener order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runOrder(cmd *cobra.Command, root *rootFlags, opts *orderOptions, manifestPath string) error {
	comp, app, err := prepareComposition(cmd, root, "order manifest", manifestPath)
	if err != nil {
		return err
	}
	defer app.Close()

	orderings, err := comp.Orderings()
	if err != nil {
		return newCommandError("order manifest", "resolving implementation orderings", err, "Remove the before/after constraint that closes the cycle.")
	}

	if opts.jsonOutput {
		return renderOrderJSON(cmd, comp, orderings)
	}
	return renderOrderTable(cmd, comp, orderings)
}

func renderOrderTable(cmd *cobra.Command, comp *composition.Composition, orderings []composition.ContractOrdering) error {
	out := cmd.OutOrStdout()

	for _, ordering := range orderings {
		fmt.Fprintln(out, heading(out, "Contract "+ordering.Contract))
		if len(ordering.Implementations) == 0 {
			fmt.Fprintln(out, "  (no implementations)")
			continue
		}
		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "  #\tNAME\tBEFORE\tAFTER\tDESCRIPTION")
		for i, impl := range ordering.Implementations {
			fmt.Fprintf(writer, "  %d\t%s\t%s\t%s\t%s\n",
				i+1,
				valueOrFallback(impl.Name, "(unnamed)"),
				joinOrDash(impl.Before),
				joinOrDash(impl.After),
				impl.Description,
			)
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, heading(out, "Listeners"))
	names := comp.Listeners.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "  (no listeners)")
		return nil
	}
	for i, name := range names {
		fmt.Fprintf(out, "  %d. %s\n", i+1, name)
	}
	return nil
}

type orderJSONImplementation struct {
	Name        string   `json:"name"`
	Before      []string `json:"before,omitempty"`
	After       []string `json:"after,omitempty"`
	Description string   `json:"description,omitempty"`
}

type orderJSONContract struct {
	Contract        string                    `json:"contract"`
	Implementations []orderJSONImplementation `json:"implementations"`
}

type orderJSONPayload struct {
	Manifest  string              `json:"manifest"`
	Contracts []orderJSONContract `json:"contracts"`
	Listeners []string            `json:"listeners"`
}

func renderOrderJSON(cmd *cobra.Command, comp *composition.Composition, orderings []composition.ContractOrdering) error {
	payload := orderJSONPayload{
		Manifest:  comp.Manifest.Name,
		Contracts: make([]orderJSONContract, len(orderings)),
		Listeners: comp.Listeners.Names(),
	}

	for i, ordering := range orderings {
		contract := orderJSONContract{
			Contract:        ordering.Contract,
			Implementations: make([]orderJSONImplementation, len(ordering.Implementations)),
		}
		for j, impl := range ordering.Implementations {
			contract.Implementations[j] = orderJSONImplementation{
				Name:        impl.Name,
				Before:      impl.Before,
				After:       impl.After,
				Description: impl.Description,
			}
		}
		payload.Contracts[i] = contract
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
