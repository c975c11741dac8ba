package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/partwire/internal/app/composition"
)

func newCheckCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Validate a manifest and every ordering it declares",
		Long: `Check parses the manifest, registers its content types, implementations and
listeners, and resolves every ordering. Duplicate names and before/after cycles
are reported without running any listener.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, args[0])
		},
	}

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootFlags, manifestPath string) error {
	comp, app, err := prepareComposition(cmd, root, "check manifest", manifestPath)
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := comp.Orderings(); err != nil {
		return newCommandError("check manifest", "resolving implementation orderings", err, "Remove the before/after constraint that closes the cycle.")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s is valid\n", formatOK(supportsUnicode(out)), comp.Manifest.Name)
	fmt.Fprintf(out, "  content types: %d\n", len(comp.Manifest.ContentTypes))
	fmt.Fprintf(out, "  contracts:     %d\n", len(comp.Manifest.Contracts))
	fmt.Fprintf(out, "  listeners:     %d\n", comp.Listeners.Len())
	return nil
}

func prepareComposition(cmd *cobra.Command, root *rootFlags, operation, manifestPath string) (*composition.Composition, *AppContext, error) {
	if err := validateManifestPath(manifestPath); err != nil {
		return nil, nil, newCommandError(operation, "locating manifest", err, "Pass the path of an existing manifest file.")
	}

	registryCfg, err := root.settings.registryConfig()
	if err != nil {
		return nil, nil, newCommandError(operation, "reading duplicate policy", err, "Use --duplicate-policy strict or graceful.")
	}

	app, err := newAppContext(root.settings, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	service := composition.NewService(composition.Options{
		Logger:         app.Logger,
		Publisher:      app.Publisher,
		Tracer:         app.Tracing.Tracer(),
		RegistryConfig: registryCfg,
	})

	comp, err := service.Prepare(manifestPath)
	if err != nil {
		_ = app.Close()
		return nil, nil, newCommandError(operation, "composing "+manifestPath, err, "Fix the reported declaration and run 'partwire check' again.")
	}

	return comp, app, nil
}
