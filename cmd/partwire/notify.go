package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/partwire/internal/app/composition"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

type notifyOptions struct {
	contentType string
	roles       []string
	jsonOutput  bool
}

func newNotifyCmd(root *rootFlags) *cobra.Command {
	opts := &notifyOptions{}

	cmd := &cobra.Command{
		Use:   "notify <manifest>",
		Short: "Simulate creating a text view and report which listeners ran",
		Long: `Notify composes the manifest, creates one text view of the given content type
and roles, and reports every listener that was notified. A listener that faults
is reported and the remaining listeners still run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotify(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.contentType, "content-type", "t", "text", "Content type of the simulated view")
	cmd.Flags().StringSliceVarP(&opts.roles, "roles", "r", nil, "Roles of the simulated view (default: an ordinary editor view)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runNotify(cmd *cobra.Command, root *rootFlags, opts *notifyOptions, manifestPath string) error {
	comp, app, err := prepareComposition(cmd, root, "simulate view creation", manifestPath)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := ports.WithCorrelationID(context.Background(), ports.GenerateCorrelationID())
	outcome, err := comp.Simulate(ctx, composition.SimulationRequest{
		ContentType: opts.contentType,
		Roles:       opts.roles,
	})
	if err != nil {
		return newCommandError("simulate view creation", "creating the view", err, "Use a content type declared in the manifest or a built-in one.")
	}

	if opts.jsonOutput {
		return renderNotifyJSON(cmd, outcome)
	}
	return renderNotifyText(cmd, outcome)
}

func renderNotifyText(cmd *cobra.Command, outcome *composition.SimulationOutcome) error {
	out := cmd.OutOrStdout()
	useUnicode := supportsUnicode(out)

	fmt.Fprintln(out, heading(out, "View "+outcome.ViewID))
	fmt.Fprintf(out, "  content type: %s\n", outcome.ContentType)
	fmt.Fprintf(out, "  roles:        %s\n", joinOrDash(outcome.Roles))

	faulted := make(map[string]string, len(outcome.Report.Faults))
	for _, fault := range outcome.Report.Faults {
		faulted[fault.Listener] = fmt.Sprint(fault.Value)
	}

	if len(outcome.Trail) == 0 {
		fmt.Fprintln(out, "  no listener applies to this view")
		return nil
	}
	for i, name := range outcome.Trail {
		if reason, ok := faulted[name]; ok {
			fmt.Fprintf(out, "  %d. %s %s: %s\n", i+1, formatFault(useUnicode), name, reason)
			continue
		}
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, formatOK(useUnicode), name)
	}
	fmt.Fprintf(out, "notified %d, faulted %d in %s\n",
		len(outcome.Report.Notified), len(outcome.Report.Faults), outcome.Report.Duration)
	return nil
}

type notifyJSONFault struct {
	Listener string `json:"listener"`
	Error    string `json:"error"`
}

type notifyJSONPayload struct {
	ViewID      string            `json:"view_id"`
	ContentType string            `json:"content_type"`
	Roles       []string          `json:"roles"`
	Notified    []string          `json:"notified"`
	Faults      []notifyJSONFault `json:"faults"`
}

func renderNotifyJSON(cmd *cobra.Command, outcome *composition.SimulationOutcome) error {
	payload := notifyJSONPayload{
		ViewID:      outcome.ViewID,
		ContentType: outcome.ContentType,
		Roles:       outcome.Roles,
		Notified:    append([]string{}, outcome.Report.Notified...),
		Faults:      make([]notifyJSONFault, len(outcome.Report.Faults)),
	}
	for i, fault := range outcome.Report.Faults {
		payload.Faults[i] = notifyJSONFault{Listener: fault.Listener, Error: fmt.Sprint(fault.Value)}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
