package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsf0/credcrypt/internal/prompt"
	"github.com/jsf0/credcrypt/internal/streamcipher"
)

const streamBufferSize = 64 * 1024

func newCryptCmd(g *globalOptions) *cobra.Command {
	var (
		encrypt  bool
		decrypt  bool
		iv       string
		strictIV bool
	)

	cmd := &cobra.Command{
		Use:   "crypt",
		Short: "Run stdin through Blowfish CFB-64 and write the result to stdout",
		Long: `Encrypts or decrypts a byte stream with Blowfish in 64-bit cipher feedback
mode. The output has the same length as the input and carries no header or
authentication tag: both sides must agree on the passphrase and IV out of
band. Use seal/open when tampering has to be detected.

The IV is taken from --iv or ` + prompt.IVEnvVar + `. Only its first 8 bytes are
used. A shorter IV falls back to all zeros, which makes every stream under
the same passphrase share a keystream; --strict-iv rejects it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if encrypt == decrypt {
				return errors.New("exactly one of --encrypt or --decrypt is required")
			}
			dir := streamcipher.Encrypt
			if decrypt {
				dir = streamcipher.Decrypt
			}

			if iv == "" {
				iv = os.Getenv(prompt.IVEnvVar)
			}

			var opts []streamcipher.Option
			if strictIV {
				opts = append(opts, streamcipher.WithStrictIV())
			} else if len(iv) < streamcipher.IVSize {
				g.logger.Warnf("IV is shorter than %d bytes; using an all-zero IV", streamcipher.IVSize)
			}

			pass, err := readPassphrase(secretSource(cmd, false), dir == streamcipher.Encrypt)
			if err != nil {
				return g.logger.ErrorfAndReturn("failed to get passphrase: %v", err)
			}
			defer pass.Destroy()

			ctx, err := streamcipher.New(pass.Bytes(), dir, []byte(iv), opts...)
			if err != nil {
				return g.logger.ErrorfAndReturn("failed to set up cipher: %v", err)
			}
			defer ctx.Close()

			g.logger.Infof("Starting %s stream", dir)
			n, err := runStream(cmd.OutOrStdout(), cmd.InOrStdin(), ctx)
			if err != nil {
				return g.logger.ErrorfAndReturn("%s failed after %d bytes: %v", dir, n, err)
			}
			g.logger.Debugf("Processed %d bytes", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&encrypt, "encrypt", "e", false, "encrypt stdin")
	cmd.Flags().BoolVarP(&decrypt, "decrypt", "d", false, "decrypt stdin")
	cmd.Flags().StringVar(&iv, "iv", "", "initialization vector (first 8 bytes used)")
	cmd.Flags().BoolVar(&strictIV, "strict-iv", false, "reject an IV shorter than 8 bytes")

	return cmd
}

func runStream(dst io.Writer, src io.Reader, ctx *streamcipher.Context) (int64, error) {
	out := bufio.NewWriterSize(dst, streamBufferSize)
	in := bufio.NewReaderSize(src, streamBufferSize)

	n, err := io.Copy(streamcipher.NewWriter(out, ctx), in)
	if err != nil {
		return n, err
	}
	if err := out.Flush(); err != nil {
		return n, fmt.Errorf("failed to flush output: %w", err)
	}
	return n, nil
}
