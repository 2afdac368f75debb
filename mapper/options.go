package mapper

import (
	"errors"
	"fmt"
	"log/slog"

	"object-mapper/node"
	"object-mapper/options"
	"object-mapper/primitive"
)

// MapperOption customizes a Mapper built by New.
type MapperOption func(*settings) error

type settings struct {
	resolvers    []Resolver
	casters      []node.Caster
	constructors []node.Constructor
	categories   primitive.CategoryEnum
	timeLayouts  []string
	tagKey       string
	logger       *slog.Logger
	concurrency  int
}

func defaultSettings() *settings {
	return &settings{
		categories:  primitive.CategoryAll,
		timeLayouts: primitive.DefaultTimeLayouts,
		tagKey:      node.DefaultTagKey,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 1,
	}
}

// WithResolvers prepends custom resolvers to the built-in chain, in the given order.
func WithResolvers(resolvers ...Resolver) MapperOption {
	return func(s *settings) error {
		for i, r := range resolvers {
			if r == nil {
				return fmt.Errorf("resolver %d is nil", i)
			}
		}

		s.resolvers = append(s.resolvers, resolvers...)

		return nil
	}
}

// WithCasters registers conversion functions tried right after the custom
// resolvers, see node.ParseCaster for the accepted signatures.
func WithCasters(fns ...any) MapperOption {
	return func(s *settings) error {
		for _, fn := range fns {
			c, err := node.ParseCaster(fn)
			if err != nil {
				return fmt.Errorf("caster %T: %w", fn, err)
			}

			s.casters = append(s.casters, c)
		}

		return nil
	}
}

// WithConstructor registers fn as a way to build its result struct, binding
// paramNames to its parameters in order. A struct with registered
// constructors is only built through them; the one with the fewest parameters
// is used.
func WithConstructor(fn any, paramNames ...string) MapperOption {
	return func(s *settings) error {
		c, err := node.ParseConstructor(fn, paramNames...)
		if err != nil {
			return fmt.Errorf("constructor %T: %w", fn, err)
		}

		s.constructors = append(s.constructors, c)

		return nil
	}
}

// WithCategories restricts scalar coercions to the given categories.
func WithCategories(categories primitive.CategoryEnum) MapperOption {
	return func(s *settings) error {
		s.categories = categories
		return nil
	}
}

// WithTimeLayouts replaces the layouts tried when parsing times from strings.
func WithTimeLayouts(layouts ...string) MapperOption {
	return func(s *settings) error {
		if len(layouts) == 0 {
			return errors.New("no time layouts")
		}

		s.timeLayouts = layouts

		return nil
	}
}

// WithTagKey sets the struct tag consulted first when matching source keys.
func WithTagKey(key string) MapperOption {
	return func(s *settings) error {
		if key == "" {
			return errors.New("empty tag key")
		}

		s.tagKey = key

		return nil
	}
}

// WithLogger sets the logger receiving resolution traces at debug level.
func WithLogger(logger *slog.Logger) MapperOption {
	return func(s *settings) error {
		if logger == nil {
			return errors.New("nil logger")
		}

		s.logger = logger

		return nil
	}
}

// WithConcurrency bounds the number of values MapAll maps at once.
func WithConcurrency(n int) MapperOption {
	return func(s *settings) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}

		s.concurrency = n

		return nil
	}
}

// WithProfile applies a loaded profile.
func WithProfile(p *options.Profile) MapperOption {
	return func(s *settings) error {
		if p == nil {
			return errors.New("nil profile")
		}

		allowed, err := p.Allowed()
		if err != nil {
			return err
		}

		s.categories = allowed

		if len(p.TimeLayouts) > 0 {
			s.timeLayouts = p.TimeLayouts
		}

		if p.Tag != "" {
			s.tagKey = p.Tag
		}

		if p.Concurrency > 0 {
			s.concurrency = p.Concurrency
		}

		return nil
	}
}
