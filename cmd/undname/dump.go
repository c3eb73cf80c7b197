package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relyze/undname/internal/demangle"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump <symbol>",
	Short: "Dump the decoded node tree for a single mangled symbol",
	Long: `dump decodes one mangled symbol and prints its full internal node
tree, rather than the rendered declaration. Useful when a rendering looks
wrong and you need to see the raw decode.

Supported formats:
  - text: indented human-readable tree (default)
  - json: the raw tree projection`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	sym, err := demangle.Decode([]byte(args[0]), nil)
	if err != nil {
		return err
	}

	switch dumpFormat {
	case "json":
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(sym)
	case "text":
		dumpText(sym, 0)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}
}

func dumpText(n *demangle.Node, depth int) {
	indent := func(extra int) string {
		return fmt.Sprintf("%*s", (depth+extra)*2, "")
	}

	fmt.Fprintf(output, "%sSymbolType=%v SimpleString=%q\n", indent(0), n.SymbolType, n.SimpleString)
	if n.IsPointer || n.IsReference || n.IsRefRef {
		fmt.Fprintf(output, "%spointer=%v reference=%v refref=%v\n", indent(1), n.IsPointer, n.IsReference, n.IsRefRef)
	}
	if n.IsConst || n.IsVolatile {
		fmt.Fprintf(output, "%sconst=%v volatile=%v\n", indent(1), n.IsConst, n.IsVolatile)
	}
	if len(n.Name) > 0 {
		fmt.Fprintf(output, "%sname:\n", indent(1))
		for _, frag := range n.Name {
			dumpText(frag, depth+2)
		}
	}
	if n.InnerType != nil {
		fmt.Fprintf(output, "%sinner:\n", indent(1))
		dumpText(n.InnerType, depth+2)
	}
	if n.Retval != nil {
		fmt.Fprintf(output, "%sretval:\n", indent(1))
		dumpText(n.Retval, depth+2)
	}
	for i, a := range n.Args {
		fmt.Fprintf(output, "%sarg[%d]:\n", indent(1), i)
		dumpText(a, depth+2)
	}
}
