package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
	"gopkg.in/yaml.v3"
)

const PLATFORM = "sen6x"

// Registrar validates the entries of one entity kind and emits their wiring.
type Registrar interface {
	Kind() domain.EntityKind
	// Schema is the schema of a platform entry: platform, sen6x_id and one option per entity key.
	Schema() schema.Schema
	// Validate checks one platform entry and returns its entities in document order.
	Validate(path string, entry *yaml.Node, defaultHubID string) ([]domain.EntityConfig, error)
	// Emit returns the wiring of one entity, nothing for a nil entity.
	Emit(entity *domain.EntityConfig) []domain.Instruction
}

// All returns one registrar per entity kind, in emission order.
func All() []Registrar {
	return []Registrar{
		NewSensorRegistrar(),
		NewBinarySensorRegistrar(),
		NewNumberRegistrar(),
		NewSwitchRegistrar(),
		NewButtonRegistrar(),
		NewTextSensorRegistrar(),
	}
}

// binding maps one configuration key to a hub setter.
type binding struct {
	key        string
	setter     string
	capability domain.Capability
	defaults   domain.Presentation
	// fixed bounds for numeric settings
	number *domain.NumberTraits
	extra  []schema.Field
	// decorate fills kind specific fields from the validated options
	decorate  func(v schema.Values, e *domain.EntityConfig)
	followUps func(e *domain.EntityConfig) []domain.Instruction
}

type base struct {
	kind      domain.EntityKind
	class     string
	options   []schema.Field
	configure func(v schema.Values, e *domain.EntityConfig)
	bindings  []binding
	index     map[string]int
	schema    schema.Schema
}

var commonOptions = []schema.Field{
	{Key: "id", Check: schema.ID},
	{Key: "name", Check: schema.String},
	{Key: "icon", Check: schema.Icon},
	{Key: "entity_category", Check: schema.Enum(false, "config", "diagnostic")},
	{Key: "disabled_by_default", Check: schema.Boolean},
	{Key: "internal", Check: schema.Boolean},
}

func newBase(kind domain.EntityKind, class string, options []schema.Field, bindings []binding) *base {
	r := &base{
		kind:     kind,
		class:    class,
		options:  options,
		bindings: bindings,
		index:    make(map[string]int, len(bindings)),
	}
	fields := []schema.Field{
		{Key: "platform", Required: true, Check: schema.String},
		{Key: "sen6x_id", Check: schema.ID},
	}
	for i, b := range bindings {
		r.index[b.key] = i
		entity := schema.Schema{Fields: commonOptions}.Extend(options...).Extend(b.extra...)
		fields = append(fields, schema.Field{Key: b.key, Check: schema.Nested(entity)})
	}
	r.schema = schema.Schema{Fields: fields}
	return r
}

func (r *base) Kind() domain.EntityKind {
	return r.kind
}

func (r *base) Schema() schema.Schema {
	return r.schema
}

// Keys returns the entity keys this registrar binds, in schema order.
func (r *base) Keys() []string {
	keys := make([]string, 0, len(r.bindings))
	for _, b := range r.bindings {
		keys = append(keys, b.key)
	}
	return keys
}

func (r *base) binding(key string) (binding, bool) {
	i, ok := r.index[key]
	if !ok {
		return binding{}, false
	}
	return r.bindings[i], true
}

func (r *base) Validate(path string, entry *yaml.Node, defaultHubID string) ([]domain.EntityConfig, error) {
	v, err := r.schema.Validate(path, entry)
	if err != nil {
		return nil, err
	}

	hubID := defaultHubID
	if v.Has("sen6x_id") {
		hubID = v.String("sen6x_id")
	}

	var entities []domain.EntityConfig
	for _, key := range v.Keys() {
		b, ok := r.binding(key)
		if !ok {
			continue
		}
		ev := v.Map(key)
		e := domain.EntityConfig{
			Kind:         r.kind,
			Key:          key,
			ID:           hubID + "_" + key,
			HubID:        hubID,
			Requires:     b.capability,
			Path:         schema.Key(path, key),
			Presentation: mergePresentation(b.defaults, ev),
		}
		if ev.Has("id") {
			e.ID = ev.String("id")
		}
		if b.number != nil {
			traits := *b.number
			e.Number = &traits
		}
		if r.configure != nil {
			r.configure(ev, &e)
		}
		if b.decorate != nil {
			b.decorate(ev, &e)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *base) Emit(e *domain.EntityConfig) []domain.Instruction {
	if e == nil {
		return nil
	}
	b, ok := r.binding(e.Key)
	if !ok {
		return nil
	}
	out := []domain.Instruction{
		domain.Construct(e.ID, r.class, constructArgs(e)...),
		domain.Call(e.HubID, b.setter, domain.RefArg(string(r.kind), e.ID)),
	}
	if b.followUps != nil {
		out = append(out, b.followUps(e)...)
	}
	return out
}

func mergePresentation(p domain.Presentation, v schema.Values) domain.Presentation {
	if v.Has("name") {
		p.Name = v.String("name")
	}
	if v.Has("icon") {
		p.Icon = v.String("icon")
	}
	if v.Has("unit_of_measurement") {
		p.UnitOfMeasurement = v.String("unit_of_measurement")
	}
	if v.Has("accuracy_decimals") {
		p.AccuracyDecimals = decimals(v.Int("accuracy_decimals"))
	}
	if v.Has("device_class") {
		p.DeviceClass = v.String("device_class")
	}
	if v.Has("state_class") {
		p.StateClass = v.String("state_class")
	}
	if v.Has("entity_category") {
		p.EntityCategory = v.String("entity_category")
	}
	if v.Has("disabled_by_default") {
		p.DisabledByDefault = v.Bool("disabled_by_default")
	}
	if v.Has("internal") {
		p.Internal = v.Bool("internal")
	}
	return p
}

func constructArgs(e *domain.EntityConfig) []domain.Arg {
	var args []domain.Arg
	add := func(name string, value string) {
		if value != "" {
			args = append(args, domain.ValueArg(name, value))
		}
	}
	p := e.Presentation
	add("name", p.Name)
	add("icon", p.Icon)
	add("unit_of_measurement", p.UnitOfMeasurement)
	if p.AccuracyDecimals != nil {
		args = append(args, domain.ValueArg("accuracy_decimals", *p.AccuracyDecimals))
	}
	add("device_class", p.DeviceClass)
	add("state_class", p.StateClass)
	add("entity_category", p.EntityCategory)
	if p.DisabledByDefault {
		args = append(args, domain.ValueArg("disabled_by_default", true))
	}
	if p.Internal {
		args = append(args, domain.ValueArg("internal", true))
	}
	if n := e.Number; n != nil {
		args = append(args,
			domain.ValueArg("min_value", n.Min),
			domain.ValueArg("max_value", n.Max),
			domain.ValueArg("step", n.Step),
			domain.ValueArg("mode", n.Mode),
			domain.ValueArg("restore_value", n.RestoreValue))
	}
	add("restore_mode", e.RestoreMode)
	return args
}

func decimals(n int64) *int64 {
	return &n
}

func setter(key string, kind domain.EntityKind) string {
	return sen6x.EntitySetter(key, string(kind))
}
