package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"golang.org/x/sync/errgroup"

	"object-mapper/internal/diagnostic"
	"object-mapper/node"
	"object-mapper/option"
	"object-mapper/primitive"
)

// Mapper maps values onto target types. It is immutable once built and safe
// for concurrent use; every call resolves with its own cache.
type Mapper struct {
	logger      *slog.Logger
	resolvers   []Resolver
	coercer     *primitive.Coercer
	catalog     *node.Catalog
	concurrency int
}

// New builds a Mapper. Without options it allows every scalar coercion, logs
// nowhere and knows no constructors.
func New(opts ...MapperOption) (*Mapper, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
	}

	m := &Mapper{
		logger: s.logger,
		coercer: &primitive.Coercer{
			Allowed:     s.categories,
			TimeLayouts: s.timeLayouts,
		},
		catalog:     node.NewCatalog(s.tagKey, s.constructors...),
		concurrency: s.concurrency,
	}

	m.resolvers = append(m.resolvers, s.resolvers...)
	if len(s.casters) > 0 {
		m.resolvers = append(m.resolvers, &casterResolver{m: m, casters: s.casters})
	}
	m.resolvers = append(m.resolvers, m.builtins()...)

	return m, nil
}

// Map maps value onto target. Nil maps to Some(nil); a value that cannot be
// mapped yields None.
func (m *Mapper) Map(value any, target reflect.Type) option.Option[any] {
	res, _ := m.Explain(value, target)
	return res
}

// Explain is Map reporting what failed or was left unused along the way.
func (m *Mapper) Explain(value any, target reflect.Type) (option.Option[any], *diagnostic.Diagnostics) {
	if target == nil {
		diags := &diagnostic.Diagnostics{}
		diags.AddError(diagnostic.CodeNoResolver, fmt.Errorf("%w: nil target type", ErrNoResolver), "", "$")

		return option.None[any](), diags
	}

	r := newResolution(m)
	res := r.run(value, target)

	return res, r.diags
}

// MapAll maps every value onto target, up to the configured concurrency at
// once. Cancelling ctx stops scheduling; values not scheduled stay None.
func (m *Mapper) MapAll(ctx context.Context, values []any, target reflect.Type) ([]option.Option[any], error) {
	results := make([]option.Option[any], len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, value := range values {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = m.Map(value, target)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}

// MapTo maps value onto T, reporting why when it cannot.
func MapTo[T any](m *Mapper, value any) (T, error) {
	var zero T

	res, diags := m.Explain(value, reflect.TypeFor[T]())

	v, ok := res.Get()
	if !ok {
		if err := diags.Error(); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrUnmapped, err)
		}

		return zero, ErrUnmapped
	}

	if v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T", ErrUnmapped, v)
	}

	return t, nil
}

// MapString parses s into T.
func MapString[T any](m *Mapper, s string) (T, error) {
	return MapTo[T](m, s)
}
