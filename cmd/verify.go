package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	cerrors "github.com/jsf0/credcrypt/internal/errors"

	"github.com/jsf0/credcrypt/internal/credential"
	"github.com/jsf0/credcrypt/internal/digest"
	"github.com/jsf0/credcrypt/internal/prompt"
	"github.com/jsf0/credcrypt/internal/salt"
)

func newVerifyCmd(g *globalOptions) *cobra.Command {
	var (
		hashHex   string
		saltText  string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a password against a stored hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := digest.Parse(hashHex)
			if err != nil {
				return g.logger.ErrorfAndReturn("invalid --hash: %v", err)
			}

			var s []byte
			if saltText != "" {
				parsed, err := salt.Parse(saltText)
				if err != nil {
					return g.logger.ErrorfAndReturn("invalid --salt: %v", err)
				}
				s = parsed.Bytes()
			}

			p := prompt.NewPrinter(cmd.ErrOrStderr())
			h := credential.NewHasher(secretSource(cmd, fromStdin), p)

			err = h.CaptureVerify(want, s)
			if errors.Is(err, cerrors.ErrVerifyFailed) {
				p.Error("The supplied password does not match")
				return err
			}
			if err != nil {
				return g.logger.ErrorfAndReturn("failed to verify password: %v", err)
			}

			p.Message("Password accepted")
			return nil
		},
	}

	cmd.Flags().StringVar(&hashHex, "hash", "", "stored hash in hex")
	cmd.Flags().StringVar(&saltText, "salt", "", "stored salt, if the hash is salted")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the password from stdin instead of the terminal")
	_ = cmd.MarkFlagRequired("hash")

	return cmd
}
