package core

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Arguments shared by the runner and the listener
type Arguments struct {
	ConfigPath string // Path to the application config, defaults apply when empty
	Verbosity  string // Log level: debug, info, warn, error
	ResultsDir string // Where the runner writes its report, nothing written when empty
}

// DefineArguments builds the command name running run with the parsed
// arguments. withResults adds the --results flag of the runner.
func DefineArguments(name string, short string, withResults bool, run func(args *Arguments) error) *cobra.Command {
	args := &Arguments{}

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return errors.Errorf("trailing args detected: %v", trailing)
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			return run(args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.ConfigPath, "config", "c", "", "--config=/path/to/config")
	flags.StringVarP(&args.Verbosity, "verbosity", "v", "info", "log level: debug, info, warn or error")
	if withResults {
		flags.StringVarP(&args.ResultsDir, "results", "r", "", "directory for the JSON report of the run")
	}

	return cmd
}
