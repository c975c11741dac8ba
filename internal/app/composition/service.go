// Package composition assembles the runtime registries described by a
// manifest and runs dry-run view creation against them.
package composition

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/alexisbeaulieu97/partwire/internal/config"
	"github.com/alexisbeaulieu97/partwire/internal/contenttype"
	"github.com/alexisbeaulieu97/partwire/internal/export"
	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
	"github.com/alexisbeaulieu97/partwire/internal/property"
	"github.com/alexisbeaulieu97/partwire/internal/view"
	partwireerrors "github.com/alexisbeaulieu97/partwire/pkg/errors"
)

// Options configures a Service. Zero values select no-op collaborators.
type Options struct {
	Logger         ports.Logger
	Publisher      ports.EventPublisher
	Tracer         trace.Tracer
	RegistryConfig *export.RegistryConfig
}

// Service turns manifests into live compositions.
type Service struct {
	opts Options
}

// NewService constructs a composition service.
func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOp()
	}
	return &Service{opts: opts}
}

// Composition is the set of registries built from one manifest.
type Composition struct {
	Path         string
	Manifest     *config.Manifest
	ContentTypes *contenttype.Registry
	Exports      *export.Registry
	Listeners    *view.ListenerRegistry

	service *Service
}

// Prepare parses the manifest at path and registers everything it declares.
func (s *Service) Prepare(path string) (*Composition, error) {
	manifest, err := config.ParseManifest(path)
	if err != nil {
		return nil, err
	}
	return s.Compose(path, manifest)
}

// Compose registers the content types, implementations and listeners of an
// already parsed manifest.
func (s *Service) Compose(path string, manifest *config.Manifest) (*Composition, error) {
	c := &Composition{
		Path:         path,
		Manifest:     manifest,
		ContentTypes: contenttype.NewRegistry(),
		Exports: export.NewRegistry(s.opts.RegistryConfig,
			export.WithLogger(s.opts.Logger),
			export.WithPublisher(s.opts.Publisher),
		),
		Listeners: view.NewListenerRegistry(),
		service:   s,
	}

	for _, decl := range manifest.ContentTypes {
		if _, err := c.ContentTypes.AddContentType(decl.Name, decl.Bases...); err != nil {
			return nil, partwireerrors.NewComponentError(decl.Name, err)
		}
	}

	for _, contract := range manifest.Contracts {
		for _, impl := range contract.Implementations {
			impl := impl
			meta := export.Metadata{
				Name:        impl.Name,
				Before:      impl.Before,
				After:       impl.After,
				Description: impl.Description,
			}
			err := c.Exports.ExportImplementation(export.Contract(contract.Contract), meta, func() (any, error) {
				return impl, nil
			})
			if err != nil {
				return nil, partwireerrors.NewComponentError(contract.Contract, err)
			}
		}
	}

	for _, decl := range manifest.Listeners {
		for _, name := range decl.ContentTypes {
			if _, err := c.ContentTypes.Get(name); err != nil {
				return nil, partwireerrors.NewComponentError(decl.Name, err)
			}
		}
		meta := view.ListenerMetadata{
			Name:         decl.Name,
			ContentTypes: decl.ContentTypes,
			Roles:        decl.Roles,
			Before:       decl.Before,
			After:        decl.After,
		}
		if err := c.Listeners.Register(meta, newTrailListener(decl)); err != nil {
			return nil, partwireerrors.NewComponentError(decl.Name, err)
		}
	}

	if err := c.Exports.Validate(); err != nil {
		return nil, err
	}

	s.opts.Logger.Debug(context.Background(), "composition prepared",
		"path", path,
		"content_types", len(manifest.ContentTypes),
		"contracts", len(manifest.Contracts),
		"listeners", c.Listeners.Len())

	return c, nil
}

// ContractOrdering is the resolved order of one contract's implementations.
type ContractOrdering struct {
	Contract        string
	Implementations []config.ImplementationDecl
}

// Orderings resolves every contract in manifest declaration order.
func (c *Composition) Orderings() ([]ContractOrdering, error) {
	orderings := make([]ContractOrdering, 0, len(c.Manifest.Contracts))
	for _, decl := range c.Manifest.Contracts {
		impls, err := c.Exports.Implementations(export.Contract(decl.Contract))
		if err != nil {
			return nil, partwireerrors.NewComponentError(decl.Contract, err)
		}
		ordering := ContractOrdering{Contract: decl.Contract}
		for _, lazy := range impls {
			value, err := lazy.Value()
			if err != nil {
				return nil, partwireerrors.NewComponentError(decl.Contract, err)
			}
			ordering.Implementations = append(ordering.Implementations, value.(config.ImplementationDecl))
		}
		orderings = append(orderings, ordering)
	}
	return orderings, nil
}

// SimulationRequest describes one dry-run view creation.
type SimulationRequest struct {
	ContentType string
	Roles       []string
}

// SimulationOutcome captures what happened while a view was created.
type SimulationOutcome struct {
	ViewID      string
	ContentType string
	Roles       []string
	// Trail lists listeners in the order they ran, including faulted ones.
	Trail  []string
	Report view.NotificationReport
}

// Simulate creates a text view through a fresh host and closes it again.
func (c *Composition) Simulate(ctx context.Context, req SimulationRequest) (*SimulationOutcome, error) {
	opts := []view.HostOption{view.WithLogger(c.service.opts.Logger)}
	if c.service.opts.Publisher != nil {
		opts = append(opts, view.WithPublisher(c.service.opts.Publisher))
	}
	if c.service.opts.Tracer != nil {
		opts = append(opts, view.WithTracer(c.service.opts.Tracer))
	}
	host := view.NewHost(c.ContentTypes, c.Listeners, opts...)
	defer host.Close()

	roles := view.NewRoleSet(req.Roles...)
	if roles.Len() == 0 {
		roles = view.NewRoleSet(view.DefaultRoles...)
	}

	v, report, err := host.CreateTextView(ctx, req.ContentType, roles)
	if err != nil {
		return nil, fmt.Errorf("simulate %s view: %w", req.ContentType, err)
	}
	defer host.CloseView(ctx, v)

	trail, _ := property.TryGet[*[]string](v.Properties(), trailKey{})
	outcome := &SimulationOutcome{
		ViewID:      v.ID(),
		ContentType: v.ContentType().Name(),
		Roles:       roles.List(),
		Report:      report,
	}
	if trail != nil {
		outcome.Trail = append(outcome.Trail, (*trail)...)
	}
	return outcome, nil
}

type trailKey struct{}

// trailListener records its name on every view it sees.
type trailListener struct {
	decl config.ListenerDecl
}

func newTrailListener(decl config.ListenerDecl) view.CreationListener {
	return &trailListener{decl: decl}
}

func (l *trailListener) TextViewCreated(v view.TextView) {
	trail, err := property.GetOrCreateSingleton(v.Properties(), trailKey{}, func() *[]string {
		return &[]string{}
	})
	if err != nil {
		panic(err)
	}
	*trail = append(*trail, l.decl.Name)

	if strings.EqualFold(l.decl.Simulate, "panic") {
		panic(fmt.Sprintf("listener %s simulated a fault", l.decl.Name))
	}
}
