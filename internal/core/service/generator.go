package service

import (
	"errors"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/registrar"
	"github.com/berfenger/sen6xgen/internal/core/resolver"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// hub update interval and cleaning interval are held as uint32 milliseconds
	maxIntervalMillis = 4294967295
)

var hubSchema = schema.Schema{Fields: []schema.Field{
	{Key: "id", Default: domain.DefaultHubID, Check: schema.ID},
	{Key: "model", Check: schema.String},
	{Key: "update_interval", Default: domain.DefaultUpdateInterval.Milliseconds(), Check: schema.DurationMillis(maxIntervalMillis)},
	{Key: "address", Default: int64(domain.DefaultI2CAddress), Check: schema.IntRange(0, 127)},
	{Key: "pressure_source", Check: schema.ID},
	{Key: "rht_acceleration", Check: schema.Nested(schema.Schema{Fields: []schema.Field{
		{Key: "k", Required: true, Check: schema.IntRange(-32768, 32767)},
		{Key: "p", Required: true, Check: schema.IntRange(-32768, 32767)},
		{Key: "t1", Required: true, Check: schema.IntRange(0, 65535)},
		{Key: "t2", Required: true, Check: schema.IntRange(0, 65535)},
	}})},
}}

// Generator turns a configuration document into the wiring sequence of one SEN6x hub.
// A Generator holds no per-build state and may be reused.
type Generator struct {
	registrars         map[domain.EntityKind]registrar.Registrar
	strictCapabilities bool
	logger             *zap.Logger
}

func NewGenerator(cfg config.Config, logger *zap.Logger) *Generator {
	g := &Generator{
		registrars:         map[domain.EntityKind]registrar.Registrar{},
		strictCapabilities: cfg.StrictCapabilities,
		logger:             logger.With(zap.String("component", "generator")),
	}
	for _, r := range registrar.All() {
		g.registrars[r.Kind()] = r
	}
	return g
}

// build carries the state of one generation run.
type build struct {
	hub      domain.HubConfig
	entities []domain.EntityConfig
	resolver *resolver.Resolver
	errs     error
}

func (b *build) fail(err error) {
	b.errs = multierr.Append(b.errs, err)
}

// Generate validates the whole document, then resolves references, then emits.
// When any violation is found no instruction is returned and the error aggregates all of them.
func (g *Generator) Generate(source []byte) (*domain.Build, error) {
	root, err := schema.Parse(source)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.NewFieldError(domain.ErrMissingRequiredField, registrar.PLATFORM, "no sen6x hub configured")
	}
	pairs, err := schema.Pairs("", root)
	if err != nil {
		return nil, err
	}

	b := &build{resolver: resolver.NewResolver()}

	// the hub is needed first, entity ids default to <hub id>_<key>
	if !g.validateHub(b, root) {
		// no hub at all, entities have nothing to bind to
		return nil, b.errs
	}
	for _, p := range pairs {
		switch {
		case p.Key == registrar.PLATFORM:
		case domain.IsEntityKind(p.Key):
			g.validateEntities(b, domain.EntityKind(p.Key), p.Value)
		default:
			declareForeign(b, domain.EntityKind(p.Key), p.Key, p.Value)
		}
	}

	g.resolve(b)
	capabilities, known := g.checkCapabilities(b)

	if b.errs != nil {
		g.logger.Debug("build rejected", zap.Int("violations", len(multierr.Errors(b.errs))))
		return nil, b.errs
	}

	instructions := g.sequence(b)
	g.logger.Info("build complete",
		zap.String("hub", b.hub.ID),
		zap.Int("entities", len(b.entities)),
		zap.Int("instructions", len(instructions)))

	return &domain.Build{
		Hub:          b.hub,
		ModelKnown:   known,
		Capabilities: capabilities,
		Entities:     b.entities,
		Instructions: instructions,
	}, nil
}

func (g *Generator) validateHub(b *build, root *yaml.Node) bool {
	node := schema.Lookup(root, registrar.PLATFORM)
	items, err := schema.Items(registrar.PLATFORM, node)
	if err != nil {
		b.fail(err)
		return false
	}
	if node != nil && schema.IsNull(node) {
		// a bare "sen6x:" declares a hub with every option defaulted
		items = []*yaml.Node{node}
	}
	switch len(items) {
	case 0:
		b.fail(domain.NewFieldError(domain.ErrMissingRequiredField, registrar.PLATFORM, "no sen6x hub configured"))
		return false
	case 1:
	default:
		b.fail(domain.NewFieldError(domain.ErrRange, registrar.PLATFORM, "exactly one sen6x hub is supported, got %d", len(items)))
		return false
	}

	path := registrar.PLATFORM
	v, err := hubSchema.Validate(path, items[0])
	if err != nil {
		// keep going with what validated so entity violations are reported too
		b.fail(err)
	}
	id := v.String("id")
	if id == "" {
		id = domain.DefaultHubID
	}
	b.hub = domain.HubConfig{
		ID:                   id,
		Model:                v.String("model"),
		UpdateIntervalMillis: v.Int("update_interval"),
		Address:              v.Int("address"),
		PressureSource:       v.String("pressure_source"),
		Path:                 path,
	}
	if v.Has("rht_acceleration") {
		rv := v.Map("rht_acceleration")
		b.hub.RhtAcceleration = &domain.RhtAcceleration{
			K:  rv.Int("k"),
			P:  rv.Int("p"),
			T1: rv.Int("t1"),
			T2: rv.Int("t2"),
		}
	}
	if err := b.resolver.Declare(b.hub.ID, domain.KIND_HUB, schema.Key(path, "id")); err != nil {
		b.fail(err)
	}
	return true
}

func (g *Generator) validateEntities(b *build, kind domain.EntityKind, list *yaml.Node) {
	path := string(kind)
	items, err := schema.Items(path, list)
	if err != nil {
		b.fail(err)
		return
	}
	r := g.registrars[kind]
	for i, item := range items {
		itemPath := schema.Index(path, i)
		platform := schema.Lookup(item, "platform")
		if platform == nil || platform.Value != registrar.PLATFORM {
			declareForeignEntry(b, kind, itemPath, item)
			continue
		}
		entities, err := r.Validate(itemPath, item, b.hub.ID)
		if err != nil {
			b.fail(err)
			declareInvalidEntry(b, r, itemPath, item)
			continue
		}
		for _, e := range entities {
			if err := b.resolver.Declare(e.ID, kind, e.Path); err != nil {
				b.fail(err)
				continue
			}
			b.entities = append(b.entities, e)
		}
	}
}

// declareInvalidEntry declares the ids a rejected sen6x entry would have produced,
// so references to them do not fail on top of the entry's own violations.
func declareInvalidEntry(b *build, r registrar.Registrar, path string, item *yaml.Node) {
	pairs, err := schema.Pairs(path, item)
	if err != nil {
		return
	}
	hubID := b.hub.ID
	if n := schema.Lookup(item, "sen6x_id"); n != nil && n.Kind == yaml.ScalarNode {
		hubID = n.Value
	}
	seen := map[string]bool{}
	for _, p := range pairs {
		if p.Key == "platform" || p.Key == "sen6x_id" || seen[p.Key] {
			continue
		}
		if _, ok := r.Schema().Field(p.Key); !ok {
			continue
		}
		seen[p.Key] = true
		id := hubID + "_" + p.Key
		if n := schema.Lookup(p.Value, "id"); n != nil && n.Kind == yaml.ScalarNode {
			id = n.Value
		}
		if err := b.resolver.Declare(id, r.Kind(), schema.Key(path, p.Key)); err != nil {
			b.fail(err)
		}
	}
}

// declareForeign records the ids of a component this generator does not handle,
// so that references to it resolve with the right kind.
func declareForeign(b *build, kind domain.EntityKind, path string, n *yaml.Node) {
	items, err := schema.Items(path, n)
	if err != nil {
		// scalar top level options (e.g. substitutions) carry no ids
		return
	}
	for i, item := range items {
		itemPath := path
		if schema.Deref(n).Kind == yaml.SequenceNode {
			itemPath = schema.Index(path, i)
		}
		declareForeignEntry(b, kind, itemPath, item)
	}
}

// declareForeignEntry declares the entry id and the ids of its direct sub-entities,
// like the pressure sensor of a bme280 entry.
func declareForeignEntry(b *build, kind domain.EntityKind, path string, item *yaml.Node) {
	pairs, err := schema.Pairs(path, item)
	if err != nil {
		return
	}
	for _, p := range pairs {
		var id *yaml.Node
		idPath := schema.Key(path, p.Key)
		if p.Key == "id" {
			id = p.Value
		} else if p.Value != nil && p.Value.Kind == yaml.MappingNode {
			id = schema.Lookup(p.Value, "id")
			idPath = schema.Key(idPath, "id")
		}
		if id == nil || id.Kind != yaml.ScalarNode {
			continue
		}
		if err := b.resolver.Declare(id.Value, kind, idPath); err != nil {
			b.fail(err)
		}
	}
}

func (g *Generator) resolve(b *build) {
	for _, e := range b.entities {
		if _, err := b.resolver.Resolve(e.HubID, domain.KIND_HUB, schema.Key(parentPath(e.Path), "sen6x_id")); err != nil {
			b.fail(err)
		}
	}
	if b.hub.PressureSource != "" {
		if _, err := b.resolver.Resolve(b.hub.PressureSource, domain.KIND_SENSOR, schema.Key(b.hub.Path, "pressure_source")); err != nil {
			b.fail(err)
		}
	}
}

func (g *Generator) checkCapabilities(b *build) (domain.CapabilityRecord, bool) {
	if b.hub.Model == "" {
		// the device reports its model at runtime, nothing to gate against
		record, _ := domain.CapabilitiesFor(string(domain.FallbackModel))
		return record, false
	}
	record, known := domain.CapabilitiesFor(b.hub.Model)
	if !known {
		g.logger.Warn("unknown model, assuming the most capable one",
			zap.String("model", b.hub.Model),
			zap.String("fallback", string(domain.FallbackModel)))
		return record, false
	}
	for _, e := range b.entities {
		if record.Supports(e.Requires) {
			continue
		}
		if g.strictCapabilities {
			b.fail(domain.NewFieldError(domain.ErrUnsupportedCapability, e.Path,
				"model %s has no %s measurements", b.hub.Model, e.Requires))
			continue
		}
		g.logger.Warn("entity not supported by model",
			zap.String("entity", e.ID),
			zap.String("model", b.hub.Model),
			zap.String("capability", string(e.Requires)))
	}
	return record, true
}

// sequence orders the wiring: hub construction and registration, hub parameters,
// then the entities of each kind in document order.
func (g *Generator) sequence(b *build) []domain.Instruction {
	hub := b.hub
	out := []domain.Instruction{
		domain.Construct(hub.ID, sen6x.HubClass,
			domain.ValueArg(sen6x.ArgUpdateInterval, hub.UpdateIntervalMillis),
			domain.ValueArg(sen6x.ArgI2CAddress, hub.Address)),
		domain.Register(hub.ID),
	}
	if a := hub.RhtAcceleration; a != nil {
		rht := domain.Call(hub.ID, sen6x.SetRhtAcceleration,
			domain.ValueArg("k", a.K),
			domain.ValueArg("p", a.P),
			domain.ValueArg("t1", a.T1),
			domain.ValueArg("t2", a.T2))
		rht.Aggregate = true
		out = append(out, rht)
	}
	if hub.PressureSource != "" {
		out = append(out, domain.Call(hub.ID, sen6x.SetPressureSource,
			domain.RefArg("sensor", hub.PressureSource)))
	}
	for _, kind := range domain.EmissionOrder {
		r := g.registrars[kind]
		for i := range b.entities {
			if b.entities[i].Kind == kind {
				out = append(out, r.Emit(&b.entities[i])...)
			}
		}
	}
	return out
}

func parentPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

// IsViolation reports whether err carries configuration violations rather than an internal failure.
func IsViolation(err error) bool {
	var fe *domain.FieldError
	for _, e := range multierr.Errors(err) {
		if errors.As(e, &fe) {
			return true
		}
	}
	return false
}
