package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create PATH",
	Short: "Create an empty directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := buildTree()
		if err != nil {
			return err
		}
		defer t.Close()

		if err := t.Create(args[0]); err != nil {
			return errors.Wrapf(err, "create %q", args[0])
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	addSeedFlag(createCmd)
}
