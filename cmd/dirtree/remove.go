package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove PATH",
	Short: "Remove an empty directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := buildTree()
		if err != nil {
			return err
		}
		defer t.Close()

		if err := t.Remove(args[0]); err != nil {
			return errors.Wrapf(err, "remove %q", args[0])
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	addSeedFlag(removeCmd)
}
