// Package main provides the CLI entrypoint for objmap.
//
// objmap drives the object mapper from the command line:
//   - Converts textual values to scalar types (coerce, kinds)
//   - Maps YAML and JSON documents onto struct shapes (map)
//   - Shows the members and constructors the mapper binds on Go structs (describe)
//   - Prints and writes mapping profiles (profile)
package main

import "object-mapper/internal/cli"

func main() {
	cli.Execute()
}
