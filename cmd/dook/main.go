// Package main is dook's CLI entry point: a single cobra command that
// locates and prints source definitions matching a regex, following
// cross-language injections and, on request, one step of recursion.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	var f flags

	cmd := &cobra.Command{
		Use:           "dook [pattern]",
		Short:         "Definition lookup in your code",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.pattern = args[0]
			}

			return run(context.Background(), os.Stdout, &f)
		},
	}

	registerFlags(cmd, &f)

	if err := cmd.Execute(); err != nil {
		if _, ok := err.(*brokenPipeError); ok {
			return 141
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

func registerFlags(cmd *cobra.Command, f *flags) {
	flagSet := cmd.Flags()

	flagSet.StringVarP(&f.configPath, "config", "c", "", "Config file path (default: search working dir, then $XDG_CONFIG_HOME/dook, then $HOME)")
	flagSet.BoolVar(&f.stdin, "stdin", false, "Read from standard input instead of searching the current directory")
	flagSet.BoolVar(&f.offline, "offline", false, "Use only parsers already downloaded to the local cache (alias for --download=no)")
	flagSet.StringVar(&f.color, "color", "auto", "Colorize output: auto, never, or always")
	flagSet.StringVar(&f.paging, "paging", "auto", "Page output through $PAGER: auto, never, or always")
	flagSet.StringVar(&f.wrap, "wrap", "auto", "Long line wrapping: auto, never, or character")
	flagSet.BoolVarP(&f.chopLong, "chop-long-lines", "S", false, "Alias for --wrap=never")
	flagSet.StringVar(&f.download, "download", "", "What to do if a parser needs to be downloaded: yes, ask, or no")
	flagSet.CountVarP(&f.plain, "plain", "p", "Apply no styling; specify twice to also disable paging")
	flagSet.BoolVarP(&f.recurse, "recurse", "r", false, "Recurse if the definition contains exactly one function or constructor call")
	flagSet.StringVar(&f.dump, "dump", "", "Dump the syntax tree of the specified file, for debugging extraction queries")
	flagSet.BoolVar(&f.onlyNames, "only-names", false, "Print only names matching the pattern")
	flagSet.CountVarP(&f.ignoreCase, "ignore-case", "i", "1x = ignore lower vs upper; 2x = interconvert camelCase etc")
	flagSet.CountVarP(&f.verbose, "verbose", "v", "Print unstructured messages about progress, for diagnostics")
}
