// Command ts2abc drives the ts2abc program builder against a file or a
// pipe, following the same flag shape as the original standalone driver.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/secureworks/errors"
	"github.com/spf13/cobra"

	"github.com/shardvm/ts2abc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath   string
		outputPath  string
		fromPipe    bool
		debugMode   bool
		moduleMode  bool
		optLevel    int
		optLogLevel string
		logEnabled  bool
	)

	cmd := &cobra.Command{
		Use:   "ts2abc",
		Short: "Decode a front-end JSON message stream into a Panda assembly program",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := ts2abc.NewBuilder()
			b.BC.DebugModeEnabled = debugMode
			b.BC.ModuleMode = moduleMode
			b.BC.OptLevel = optLevel
			b.BC.OptLogLevel = optLogLevel
			b.BC.LogEnabled = logEnabled
			if logEnabled {
				b.Logger = log.New(os.Stderr, "ts2abc: ", 0)
			}

			out, err := openOutput(outputPath)
			if err != nil {
				return errors.WithStackTrace(err)
			}
			if out != os.Stdout {
				defer out.Close()
			}

			if fromPipe {
				pipe := os.NewFile(3, "pipe")
				if pipe == nil {
					return errors.New("ts2abc: --pipe requires fd 3 to be open")
				}
				return b.BuildFromPipe(pipe, out)
			}

			in, err := os.Open(inputPath)
			if err != nil {
				return errors.WithStackTrace(err)
			}
			defer in.Close()
			return b.BuildFromReader(in, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputPath, "input", "", "path to the JSON message stream file")
	flags.StringVar(&outputPath, "output", "-", "path to write the emitted program (\"-\" for stdout)")
	flags.BoolVar(&fromPipe, "pipe", false, "read the message stream from fd 3 in chunks, instead of --input")
	flags.BoolVar(&debugMode, "debug", false, "enable debug-info decoding")
	flags.BoolVar(&moduleMode, "module", false, "treat the input as an ECMAScript module")
	flags.IntVar(&optLevel, "opt-level", 0, "bytecode optimization level")
	flags.StringVar(&optLogLevel, "opt-log-level", "error", "optimizer log level")
	flags.BoolVar(&logEnabled, "log", false, "enable driver diagnostic logging")

	return cmd
}

func openOutput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
