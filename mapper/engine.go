package mapper

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"object-mapper/internal/diagnostic"
	"object-mapper/internal/match"
	"object-mapper/node"
	"object-mapper/option"
)

type frameKind int

const (
	frameRequest frameKind = iota
	frameExpand
	frameFinalize
)

// frame is one unit of work on the resolution stack.
type frame struct {
	kind    frameKind
	key     MappingKey
	value   any
	path    string
	mapping Mapping
	deps    []Dependency
	keys    []MappingKey
}

type patch struct {
	patcher  Patcher
	instance any
	name     string
}

// resolution is the state of a single Map call. A key is settled exactly once,
// either cached or failed, and every dependent observes the same cached instance.
type resolution struct {
	m      *Mapper
	log    *slog.Logger
	diags  *diagnostic.Diagnostics
	stack  []frame
	serial uint64

	arena   []any
	cache   map[MappingKey]int
	keys    node.Dealer[MappingKey] // pending: in flight, done: cached or failed
	patches map[MappingKey][]patch
}

func newResolution(m *Mapper) *resolution {
	return &resolution{
		m:       m,
		log:     m.logger,
		diags:   &diagnostic.Diagnostics{},
		cache:   make(map[MappingKey]int),
		patches: make(map[MappingKey][]patch),
	}
}

func (r *resolution) nextSerial() uint64 {
	r.serial++
	return r.serial
}

// run maps value onto target and returns the cached result of the root key.
func (r *resolution) run(value any, target reflect.Type) option.Option[any] {
	root := keyOf(value, target, r.nextSerial)
	r.push(frame{kind: frameRequest, key: root, value: value, path: "$"})

	for len(r.stack) > 0 {
		f := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		switch f.kind {
		case frameRequest:
			r.request(f)
		case frameExpand:
			r.expand(f)
		case frameFinalize:
			r.finalize(f)
		}
	}

	if n := r.keys.Pending(); n > 0 {
		r.log.Debug("resolution left keys unsettled", "count", n)
	}

	return r.lookup(root)
}

func (r *resolution) push(f frame) {
	r.stack = append(r.stack, f)
}

func (r *resolution) lookup(key MappingKey) option.Option[any] {
	if idx, ok := r.cache[key]; ok {
		return option.Some(r.arena[idx])
	}

	return option.None[any]()
}

func (r *resolution) request(f frame) {
	if r.keys.IsDone(f.key) || r.keys.IsPending(f.key) {
		return
	}

	if isNil(f.value) {
		r.store(f.key, nil)
		return
	}

	r.keys.Needs(f.key)

	mapping, resolver, ok := r.resolve(f.value, f.key.Target)
	if !ok {
		r.noResolver(f)
		return
	}

	r.log.Debug("resolved",
		"path", f.path,
		"key", f.key.String(),
		"resolver", resolver,
		"kind", KindOf(mapping).String())

	f.kind, f.mapping = frameExpand, mapping
	r.push(f)
}

// resolve walks the resolver chain. The first resolver whose Mappable maps
// onto target wins.
func (r *resolution) resolve(value any, target reflect.Type) (Mapping, string, bool) {
	for _, resolver := range r.m.resolvers {
		mappable, ok := resolver.Resolve(value).Get()
		if !ok || mappable == nil {
			continue
		}

		if b, ok := mappable.(bindable); ok {
			mappable = b.bind(r.m)
		}

		if mapping, ok := mappable.To(target).Get(); ok && mapping != nil {
			return mapping, resolverName(resolver), true
		}
	}

	return nil, "", false
}

func resolverName(resolver Resolver) string {
	if s, ok := resolver.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", resolver)
}

func (r *resolution) expand(f frame) {
	deps := f.mapping.Dependencies()

	keys := make([]MappingKey, len(deps))
	for i, dep := range deps {
		keys[i] = keyOf(dep.Value, dep.Type, r.nextSerial)
	}

	r.push(frame{kind: frameFinalize, key: f.key, path: f.path, mapping: f.mapping, deps: deps, keys: keys})

	// reverse order, so the first dependency is handled first
	for i := len(deps) - 1; i >= 0; i-- {
		r.push(frame{kind: frameRequest, key: keys[i], value: deps[i].Value, path: f.path + "." + deps[i].Name})
	}
}

func (r *resolution) finalize(f frame) {
	values := NewValues()

	var deferred, missing []string
	for i, dep := range f.deps {
		key := f.keys[i]

		switch {
		case r.lookup(key).IsSome():
			values.Set(dep.Name, r.lookup(key))
		case r.keys.IsPending(key):
			values.Defer(dep.Name)
			deferred = append(deferred, dep.Name)
		default:
			values.Set(dep.Name, option.None[any]())
			missing = append(missing, dep.Name)
		}
	}

	instance, ok := f.mapping.Create(values).Get()
	if !ok {
		r.createFailed(f, deferred, missing)
		return
	}

	if len(deferred) > 0 {
		if p, ok := f.mapping.(Patcher); ok {
			for i, dep := range f.deps {
				if values.IsDeferred(dep.Name) {
					r.patches[f.keys[i]] = append(r.patches[f.keys[i]], patch{patcher: p, instance: instance, name: dep.Name})
				}
			}
		}
	}

	if om, ok := f.mapping.(*objectMapping); ok {
		r.reportUnmatched(f, om)
	}

	r.store(f.key, instance)
}

// store caches the instance of key and applies the patches waiting for it.
func (r *resolution) store(key MappingKey, instance any) {
	r.cache[key] = len(r.arena)
	r.arena = append(r.arena, instance)
	r.keys.Done(key)

	for _, p := range r.patches[key] {
		if !p.patcher.Patch(p.instance, p.name, instance) {
			r.log.Debug("back-reference not assigned", "key", key.String(), "member", p.name)
		}
	}

	delete(r.patches, key)
}

func (r *resolution) fail(f frame, code string, err error) {
	r.keys.Done(f.key)
	delete(r.patches, f.key)

	r.diags.AddError(code, err, f.key.String(), f.path)
	r.log.Debug("mapping failed", "path", f.path, "key", f.key.String(), "error", err)
}

func (r *resolution) noResolver(f frame) {
	err := fmt.Errorf("%w: %T to %s", ErrNoResolver, f.value, node.TypeName(f.key.Target))

	if node.Dispatch(f.key.Target) == node.DispatcherPrimitive {
		if _, cerr := r.m.coercer.Coerce(reflect.ValueOf(deref(f.value)), f.key.Target); cerr != nil {
			r.diags.AddWarning(diagnostic.CodeCoercionFailed, cerr.Error(), f.key.String(), f.path)
			err = fmt.Errorf("%w: %w", ErrNoResolver, cerr)
		}
	}

	r.fail(f, diagnostic.CodeNoResolver, err)
}

// createFailed reports a mapping whose Create declined. Back-references still in
// flight make it a cycle that cannot be broken, otherwise dependencies failed.
func (r *resolution) createFailed(f frame, deferred, missing []string) {
	if len(deferred) > 0 {
		r.fail(f, diagnostic.CodeCyclicDependency,
			fmt.Errorf("%w: %s requires %s while it is being mapped",
				ErrCyclicDependency, node.TypeName(f.key.Target), strings.Join(deferred, ", ")))
		return
	}

	detail := "create declined"
	if len(missing) > 0 {
		detail = "unresolved " + strings.Join(missing, ", ")
	}

	r.fail(f, diagnostic.CodeMissingDependency,
		fmt.Errorf("%w: %s: %s", ErrMissingDependency, node.TypeName(f.key.Target), detail))
}

func (r *resolution) reportUnmatched(f frame, om *objectMapping) {
	if len(om.Unmatched()) == 0 {
		return
	}

	names := om.shape.MemberNames()
	for _, key := range om.Unmatched() {
		r.diags.AddInfo(diagnostic.CodeUnmatchedKey,
			fmt.Sprintf("source key %q is not used", key),
			f.key.String(), f.path,
			match.SuggestNames(key, names, 3)...)
	}
}
