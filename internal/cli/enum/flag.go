// Package enum provides a pflag.Value accepting one value out of a fixed set.
package enum

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
)

const Type = "enum"

// Flag holds one of its options. The first option is the default.
type Flag struct {
	value   string
	options []string
}

// New returns a Flag over options, set to the first one.
func New(options ...string) *Flag {
	if len(options) == 0 {
		panic("enum flag needs at least one option")
	}

	return &Flag{value: options[0], options: options}
}

func (f *Flag) Type() string { return Type }

func (f *Flag) String() string { return f.value }

func (f *Flag) Set(value string) error {
	if !slices.Contains(f.options, value) {
		return fmt.Errorf("expected one of %q", f.options)
	}

	f.value = value

	return nil
}

// Var registers an enum flag on fs.
func Var(fs *pflag.FlagSet, name string, options []string, usage string) {
	VarP(fs, name, "", options, usage)
}

// VarP is Var with a shorthand.
func VarP(fs *pflag.FlagSet, name, shorthand string, options []string, usage string) {
	sorted := slices.Sorted(slices.Values(options))
	fs.VarP(New(options...), name, shorthand, fmt.Sprintf("%s\n(must be one of %v)", usage, sorted))
}

// Get reads the enum flag name from fs.
func Get(fs *pflag.FlagSet, name string) (string, error) {
	flag := fs.Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("flag accessed but not defined: %s", name)
	}

	if flag.Value.Type() != Type {
		return "", fmt.Errorf("trying to get %s value of flag of type %s", Type, flag.Value.Type())
	}

	return flag.Value.String(), nil
}
