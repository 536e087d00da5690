// Package cmd implements the credcrypt command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsf0/credcrypt/internal/logging"
	"github.com/jsf0/credcrypt/internal/prompt"
)

const Version = "1.0.0"

type globalOptions struct {
	verbose bool
	debug   bool
	logger  logging.Logger
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "credcrypt",
		Short: "Password hashing and Blowfish stream encryption",
		Long: `credcrypt captures passwords for storage and encrypts byte streams.

Passwords are entered twice and hashed with an optional salt. The crypt
command runs stdin through Blowfish in CFB-64 mode; seal and open wrap
data in an authenticated envelope instead.

The passphrase for crypt, seal and open is read from ` + prompt.PassphraseEnvVar + `
when set, and from the terminal otherwise.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.logger = logging.Logger{
				Verbose: g.verbose,
				Debug:   g.debug,
				Out:     cmd.ErrOrStderr(),
				Err:     cmd.ErrOrStderr(),
			}
		},
	}

	root.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug output")

	root.AddCommand(
		newHashCmd(g),
		newVerifyCmd(g),
		newCryptCmd(g),
		newSealCmd(g),
		newOpenCmd(g),
	)

	return root
}

// Execute runs the command line against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// secretSource picks where passwords come from: newline-separated lines on
// stdin when fromStdin is set, otherwise the environment and then the
// terminal.
func secretSource(cmd *cobra.Command, fromStdin bool) prompt.Reader {
	p := prompt.NewPrinter(cmd.ErrOrStderr())
	if fromStdin {
		return prompt.NewLines(cmd.InOrStdin(), p)
	}
	return prompt.NewEnv(&prompt.Terminal{Printer: p})
}
