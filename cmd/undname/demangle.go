package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relyze/undname/internal/demangle"
	"github.com/relyze/undname/internal/jsontree"
)

var (
	demanglePreset     string
	demangleSetFlags   []string
	demangleUnsetFlags []string
	demangleJSON       string
	demangleFile       string
)

var demangleCmd = &cobra.Command{
	Use:   "demangle [symbol]...",
	Short: "Decode mangled symbol names",
	Long: `demangle decodes one or more MSVC mangled symbol names, either given
as arguments or read one per line from a file with -f.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemangleArgs(args, demangleFile)
	},
}

func init() {
	demangleCmd.Flags().StringVar(&demanglePreset, "preset", "undname", "attribute preset: undname, pretty")
	demangleCmd.Flags().StringArrayVar(&demangleSetFlags, "set", nil, "set an individual attribute flag by name")
	demangleCmd.Flags().StringArrayVar(&demangleUnsetFlags, "unset", nil, "unset an individual attribute flag by name")
	demangleCmd.Flags().StringVar(&demangleJSON, "json", "", "emit JSON instead of text: convert, raw, or minimal")
	demangleCmd.Flags().StringVarP(&demangleFile, "file", "f", "", "read mangled names, one per line, from file")
}

func resolveAttributes() (demangle.Attributes, error) {
	var attr demangle.Attributes
	switch demanglePreset {
	case "undname":
		attr = demangle.Undname()
	case "pretty":
		attr = demangle.Pretty()
	default:
		return 0, fmt.Errorf("unknown preset %q", demanglePreset)
	}
	for _, name := range demangleSetFlags {
		flag, ok := demangle.FlagByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown attribute flag %q", name)
		}
		attr = attr.Set(flag)
	}
	for _, name := range demangleUnsetFlags {
		flag, ok := demangle.FlagByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown attribute flag %q", name)
		}
		attr = attr.Unset(flag)
	}
	return attr, nil
}

func runDemangleArgs(args []string, file string) error {
	attr, err := resolveAttributes()
	if err != nil {
		return err
	}

	names := append([]string(nil), args...)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			names = append(names, line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed reading %s: %w", file, err)
		}
	}

	if len(names) == 0 {
		return fmt.Errorf("no symbols given: pass arguments or -f a file")
	}

	for _, name := range names {
		if err := demangleOne(name, attr); err != nil {
			fmt.Fprintf(output, "%s: %v\n", name, err)
		}
	}
	return nil
}

func demangleOne(mangled string, attr demangle.Attributes) error {
	sym, err := demangle.Decode([]byte(mangled), nil)
	if err != nil {
		return err
	}

	switch demangleJSON {
	case "":
		text, err := demangle.Render(sym, attr)
		if err != nil {
			return err
		}
		if colorize {
			fmt.Fprintf(output, "\x1b[1m%s\x1b[0m\n", text)
		} else {
			fmt.Fprintln(output, text)
		}
		return nil
	case "convert":
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(jsontree.Convert(sym, attr))
	case "raw":
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(jsontree.Raw(sym))
	case "minimal":
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(jsontree.Minimal(sym, attr))
	default:
		return fmt.Errorf("unknown --json mode %q", demangleJSON)
	}
}
