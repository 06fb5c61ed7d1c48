package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list PATH",
	Short: "List the children of a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := buildTree()
		if err != nil {
			return err
		}
		defer t.Close()

		listing, err := t.List(args[0])
		if err != nil {
			return errors.Wrapf(err, "list %q", args[0])
		}
		fmt.Println(listing)
		return nil
	},
}

func init() {
	addSeedFlag(listCmd)
}
