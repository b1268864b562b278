package forge

import (
	"slices"

	"go.uber.org/zap"
)

// Factory produces Builders for one fixed list of parameter specifications
// and one constructor. It is immutable once created and may be shared.
type Factory[T any] struct {
	params  []ParamSpec
	fields  map[string]int // param name -> position
	methods map[string]method
	order   []string
	ctor    Constructor[T]
	log     *zap.Logger
}

// Option configures a Factory.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger routes debug logs of factory creation and builds to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a Factory from typed specifications. Entries are validated in
// order; the first invalid one fails with a ParamSpec error. Besides the
// per-entry checks, an entry whose setter or accumulator name is already
// taken by an earlier entry (a repeated name, or two accumulators sharing an
// item name) is rejected with a ParamSpec error carrying the later index.
func New[T any](specs []ParamSpec, ctor Constructor[T], opts ...Option) (*Factory[T], error) {
	if ctor == nil {
		return nil, configError(reasonConstructor)
	}
	params := make([]ParamSpec, 0, len(specs))
	for i, ps := range specs {
		checked, err := checkSpec(i, ps)
		if err != nil {
			return nil, err
		}
		params = append(params, checked)
	}
	return newFactory(params, ctor, opts)
}

// MustNew is like New but panics on error.
func MustNew[T any](specs []ParamSpec, ctor Constructor[T], opts ...Option) *Factory[T] {
	f, err := New(specs, ctor, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Create is the untyped entry point. specs must be a slice or array of
// entries (ParamSpec, *ParamSpec, string-keyed maps or structs) and ctor a
// function; see adaptConstructor for the accepted signatures. Both arguments
// are checked before any entry is processed. Entries are then validated as
// in New, including the rejection of duplicate method names.
func Create(specs any, ctor any, opts ...Option) (*Factory[any], error) {
	seq, ok := sequenceOf(specs)
	if !ok {
		return nil, configError(reasonSequence)
	}
	fn, err := adaptConstructor(ctor, seq.Len())
	if err != nil {
		return nil, err
	}
	params, err := parseEntries(seq)
	if err != nil {
		return nil, err
	}
	return newFactory(params, fn, opts)
}

func newFactory[T any](params []ParamSpec, ctor Constructor[T], opts []Option) (*Factory[T], error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	table, order, err := buildMethods(params)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]int, len(params))
	for i, ps := range params {
		fields[ps.Name] = i
	}
	f := &Factory[T]{
		params:  params,
		fields:  fields,
		methods: table,
		order:   order,
		ctor:    ctor,
		log:     o.logger,
	}
	f.log.Debug("forge: factory created", zap.Int("params", len(params)), zap.Strings("methods", order))
	return f, nil
}

// NewBuilder returns an empty Builder.
func (f *Factory[T]) NewBuilder() *Builder[T] {
	return &Builder[T]{
		f:      f,
		values: make(map[string]any, len(f.params)),
		owned:  make(map[string]bool),
	}
}

// Params returns a copy of the validated specifications in declaration order.
func (f *Factory[T]) Params() []ParamSpec { return slices.Clone(f.params) }

// Methods returns the synthesized method names in declaration order: the
// setter of each field followed by its accumulator, if any.
func (f *Factory[T]) Methods() []string { return slices.Clone(f.order) }

// HasMethod reports whether name was synthesized.
func (f *Factory[T]) HasMethod(name string) bool {
	_, ok := f.methods[name]
	return ok
}
