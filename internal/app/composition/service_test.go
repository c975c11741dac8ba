package composition

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/partwire/internal/contenttype"
	"github.com/alexisbeaulieu97/partwire/internal/export"
	"github.com/alexisbeaulieu97/partwire/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
	partwireerrors "github.com/alexisbeaulieu97/partwire/pkg/errors"
)

const editorManifest = `
version: "1.0"
name: editor
content_types:
  - name: csharp
    base: [code]
contracts:
  - contract: formatter
    implementations:
      - name: default
      - name: fast
        before: [default]
      - name: experimental
        after: [default]
listeners:
  - name: outline
    content_types: [code]
    roles: [structured]
  - name: spellcheck
    content_types: [text]
    after: [outline]
  - name: crashy
    content_types: [csharp]
    simulate: panic
    before: [outline]
  - name: preview-only
    content_types: [any]
    roles: [preview]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func strictService(opts Options) *Service {
	opts.RegistryConfig = &export.RegistryConfig{DuplicatePolicy: export.PolicyStrict}
	return NewService(opts)
}

func TestPrepareBuildsOrderings(t *testing.T) {
	c, err := strictService(Options{}).Prepare(writeManifest(t, editorManifest))
	require.NoError(t, err)

	ct, err := c.ContentTypes.Get("CSharp")
	require.NoError(t, err)
	require.True(t, ct.IsOfType(contenttype.Text))

	orderings, err := c.Orderings()
	require.NoError(t, err)
	require.Len(t, orderings, 1)

	var names []string
	for _, impl := range orderings[0].Implementations {
		names = append(names, impl.Name)
	}
	require.Equal(t, []string{"fast", "default", "experimental"}, names)
	require.Equal(t, []string{"crashy", "outline", "spellcheck", "preview-only"}, c.Listeners.Names())
}

func TestSimulateIsolatesFaultingListener(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)
	publisher := events.NewLoggingPublisher(log)

	var failed []string
	_, err = publisher.Subscribe(ports.EventListenerFailed, func(_ context.Context, event ports.DomainEvent) error {
		failed = append(failed, event.EventType())
		return nil
	})
	require.NoError(t, err)

	c, err := strictService(Options{Logger: log, Publisher: publisher}).Prepare(writeManifest(t, editorManifest))
	require.NoError(t, err)

	outcome, err := c.Simulate(context.Background(), SimulationRequest{ContentType: "csharp"})
	require.NoError(t, err)

	require.Equal(t, []string{"crashy", "outline", "spellcheck"}, outcome.Trail)
	require.Equal(t, []string{"outline", "spellcheck"}, outcome.Report.Notified)
	require.Len(t, outcome.Report.Faults, 1)
	require.Equal(t, "crashy", outcome.Report.Faults[0].Listener)
	require.Len(t, failed, 1)
	require.Contains(t, buf.String(), "creation listener failed")
}

func TestSimulateFiltersByRoles(t *testing.T) {
	c, err := strictService(Options{}).Prepare(writeManifest(t, editorManifest))
	require.NoError(t, err)

	outcome, err := c.Simulate(context.Background(), SimulationRequest{ContentType: "plaintext", Roles: []string{"PREVIEW"}})
	require.NoError(t, err)
	require.Equal(t, []string{"spellcheck", "preview-only"}, outcome.Report.Notified)
	require.False(t, outcome.Report.Failed())

	_, err = c.Simulate(context.Background(), SimulationRequest{ContentType: "cobol"})
	var unknown *contenttype.UnknownContentTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestComposeRejectsUnknownReferences(t *testing.T) {
	cases := map[string]string{
		"unknown base": "version: \"1.0\"\nname: x\ncontent_types:\n  - name: razor\n    base: [html]\n",
		"unknown listener content type": "version: \"1.0\"\nname: x\nlisteners:\n" +
			"  - name: a\n    content_types: [html]\n",
	}

	for name, manifest := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := strictService(Options{}).Prepare(writeManifest(t, manifest))
			var componentErr *partwireerrors.ComponentError
			require.ErrorAs(t, err, &componentErr)
			var unknown *contenttype.UnknownContentTypeError
			require.ErrorAs(t, err, &unknown)
		})
	}
}

func TestPrepareSurfacesManifestErrors(t *testing.T) {
	_, err := NewService(Options{}).Prepare(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *partwireerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}
