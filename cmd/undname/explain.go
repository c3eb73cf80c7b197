package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relyze/undname/internal/demangle"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "List every renderer attribute flag and what it controls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, fd := range demangle.Attributes(0).Explain() {
			fmt.Fprintf(output, "%-50s %s\n", fd.Name, fd.Description)
		}
		return nil
	},
}
