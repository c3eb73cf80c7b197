package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer

	colorMode string
	colorize  bool
)

var rootCmd = &cobra.Command{
	Use:   "undname [symbol]...",
	Short: "MSVC mangled C++ symbol name decoder",
	Long: `undname decodes Microsoft Visual C++ mangled symbol names back into
human-readable C++ declarations.

Given one or more mangled names directly, it prints their demangled form
using the undname-compatible attribute preset. For finer control over
output (JSON, flag presets, batch files), use the demangle subcommand.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}

		switch colorMode {
		case "always":
			colorize = true
		case "never":
			colorize = false
		default:
			if f, ok := output.(*os.File); ok {
				colorize = term.IsTerminal(int(f.Fd()))
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runDemangleArgs(args, "")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(demangleCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(dumpCmd)
}
