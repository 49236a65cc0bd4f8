package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "mtfind [INPUT MASK]",
	Short: "mtfind - parallel wildcard-mask line scanner",
	Long: `mtfind finds every occurrence of a mask in the lines of an input file or
stdin and reports them tagged with line number and in-line position.

A mask should meet the following format (the rule is represented in EBNF):
    MASK = ASCII 7-bit symbol | ?, { ASCII 7-bit symbol | ? }

    ASCII 7-bit symbol - a symbol from the ASCII table encoded from 0 up to
                         126 including, except CR and LF
    ?                  - matches any single byte

examples:
    > mtfind input.txt "?ad"
        Will find words "bad", "mad", "sad", " ad", ";ad", etc. Whitespace
        symbols and separators also meet a mask '?'

    > mtfind input.txt "??"
        Will split an input file into pairs of symbols

    > mtfind input.txt "hello"
        Will find words "hello" in input.txt

    > mtfind input.txt "wor:d"
        Will find words "wor:d" in input.txt. Colon is as normal as letters
        and digits to search for matching

    > cat input.txt | mtfind - "wor:d"
        Will do the same as the previous example except that stdin is used`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// the bare positional form of the original tool: mtfind INPUT MASK
		if len(args) == 0 {
			return cmd.Help()
		}
		if len(args) < 2 {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: invalid number of parameters")
			_ = cmd.Help()
			return fmt.Errorf("invalid number of parameters")
		}
		for _, extra := range args[2:] {
			fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: redundant parameter '%s' provided, skipped\n", extra)
		}
		return runFind(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	cobra.OnInitialize(configureLogging)

	// Add subcommands
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(versionCmd)
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
}

// coreLogger adapts the CLI logger to the scanner's debug interface.
type coreLogger struct{}

func (coreLogger) Log(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		return err
	}
	return nil
}
