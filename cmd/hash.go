package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsf0/credcrypt/internal/credential"
	"github.com/jsf0/credcrypt/internal/digest"
	"github.com/jsf0/credcrypt/internal/prompt"
	"github.com/jsf0/credcrypt/internal/salt"
)

func newHashCmd(g *globalOptions) *cobra.Command {
	var (
		salted    bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Prompt for a password twice and print its hash",
		Long: `Prompts for a password and its confirmation until both match and are
non-empty, then prints a <Pass> block ready to paste into a config file.

With --salted a random 20-character salt is appended to the password
before hashing and printed alongside the hash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g.logger.Debugf("Capturing password (salted=%v, stdin=%v)", salted, fromStdin)

			h := credential.NewHasher(
				secretSource(cmd, fromStdin),
				prompt.NewPrinter(cmd.ErrOrStderr()),
			)

			var (
				d   digest.Digest
				s   salt.Salt
				err error
			)
			if salted {
				d, s, err = h.CaptureSaltedHash()
			} else {
				d, err = h.CaptureHash()
			}
			if err != nil {
				return g.logger.ErrorfAndReturn("failed to hash password: %v", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "<Pass password>")
			fmt.Fprintln(out, "\tMethod = md5")
			fmt.Fprintf(out, "\tHash = %s\n", d.Hex())
			if salted {
				fmt.Fprintf(out, "\tSalt = %s\n", s)
			}
			fmt.Fprintln(out, "</Pass>")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&salted, "salted", "s", false, "append a random salt before hashing")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the password lines from stdin instead of the terminal")

	return cmd
}
