// Package cli implements the objmap command line client: it exposes the
// scalar coercions, maps YAML and JSON documents onto runtime shapes and
// describes Go structs the way the mapper sees them.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"object-mapper/internal/cli/log"
	"object-mapper/mapper"
	"object-mapper/options"
)

const ProfileFlagName = "profile"

// Execute runs the objmap command tree. It is called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

// New returns the objmap root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objmap [sub-command]",
		Short: "Map loosely typed documents onto Go types",
		Long: `objmap drives the object mapper from the command line. It converts scalar
values, maps YAML and JSON documents onto struct shapes declared in a file and
lists the members and constructors the mapper sees on Go structs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String(ProfileFlagName, "", "mapping profile (YAML) with conversion categories, time layouts and tag key")
	log.RegisterLoggingFlags(cmd.PersistentFlags())

	cmd.AddCommand(newKindsCmd())
	cmd.AddCommand(newCoerceCmd())
	cmd.AddCommand(newMapCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newProfileCmd())

	return cmd
}

// loadProfile reads the --profile file, the default profile when unset.
func loadProfile(cmd *cobra.Command) (*options.Profile, error) {
	path, err := cmd.Flags().GetString(ProfileFlagName)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return options.Default(), nil
	}

	return options.LoadFile(path)
}

// newMapper builds the mapper configured by the persistent flags.
func newMapper(cmd *cobra.Command) (*mapper.Mapper, *options.Profile, error) {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return nil, nil, err
	}

	profile, err := loadProfile(cmd)
	if err != nil {
		return nil, nil, err
	}

	m, err := mapper.New(mapper.WithLogger(logger), mapper.WithProfile(profile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build mapper: %w", err)
	}

	return m, profile, nil
}
