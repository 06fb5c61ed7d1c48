package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move SOURCE TARGET",
	Short: "Move a directory to a new path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := buildTree()
		if err != nil {
			return err
		}
		defer t.Close()

		if err := t.Move(args[0], args[1]); err != nil {
			return errors.Wrapf(err, "move %q -> %q", args[0], args[1])
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	addSeedFlag(moveCmd)
}
