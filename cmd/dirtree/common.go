package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arkdir/dirtree/pkg/dirtree"
)

var seed string

func addSeedFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&seed, "seed", "", "comma-separated list of directory paths to create before running the command")
}

// buildTree constructs a tree and applies --seed's paths to it in
// order, so a demo command can be run against some pre-existing
// structure without a second process.
func buildTree() (*dirtree.Tree, error) {
	t := dirtree.New(dirtree.WithLogger(log))
	for _, path := range strings.Split(seed, ",") {
		if path == "" {
			continue
		}
		if err := t.Create(path); err != nil {
			t.Close()
			return nil, errors.Wrapf(err, "seeding %q", path)
		}
	}
	return t, nil
}
