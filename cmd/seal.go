package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsf0/credcrypt/internal/seal"
)

func newSealCmd(g *globalOptions) *cobra.Command {
	var (
		useBase64  bool
		memory     string
		iterations uint32
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt stdin into an authenticated envelope",
		Long: `Encrypts stdin with AES-256-GCM in 1MB segments (Tink streaming AEAD) under
a key derived with Argon2id. The KDF parameters are stored in a JSON header
line so open needs nothing but the passphrase.`,
		Example: `  cat backup.tar | credcrypt seal > backup.tar.sealed
  cat backup.tar | credcrypt seal -m 2G -i 4 > backup.tar.sealed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := parseMemory(memory)
			if err != nil {
				return g.logger.ErrorfAndReturn("invalid memory value: %v", err)
			}
			if iterations < 1 {
				return g.logger.ErrorfAndReturn("iterations must be at least 1")
			}
			if iterations > seal.MaxIterations {
				return g.logger.ErrorfAndReturn("iterations must be at most %d", seal.MaxIterations)
			}

			pass, err := readPassphrase(secretSource(cmd, false), true)
			if err != nil {
				return g.logger.ErrorfAndReturn("failed to get passphrase: %v", err)
			}
			defer pass.Destroy()

			g.logger.Infof("Sealing with argon2id memory=%dKiB iterations=%d", mem, iterations)
			opts := seal.Options{Base64: useBase64, Memory: mem, Iterations: iterations}
			if err := seal.Seal(cmd.OutOrStdout(), cmd.InOrStdin(), pass.Bytes(), opts); err != nil {
				return g.logger.ErrorfAndReturn("seal failed: %v", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useBase64, "base64", "b", false, "base64-encode the ciphertext (text-safe, 33% larger)")
	cmd.Flags().StringVarP(&memory, "memory", "m", "1G", "Argon2 memory cost, e.g. 64M, 256M, 1G")
	cmd.Flags().Uint32VarP(&iterations, "iterations", "i", 3, "Argon2 iterations")

	return cmd
}

func newOpenCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Decrypt an envelope produced by seal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readPassphrase(secretSource(cmd, false), false)
			if err != nil {
				return g.logger.ErrorfAndReturn("failed to get passphrase: %v", err)
			}
			defer pass.Destroy()

			if err := seal.Open(cmd.OutOrStdout(), cmd.InOrStdin(), pass.Bytes()); err != nil {
				return g.logger.ErrorfAndReturn("open failed: %v", err)
			}
			return nil
		},
	}
}

// parseMemory converts sizes like "64", "64M", "1G" or "512KB" to KiB. A
// bare number is taken as MiB.
func parseMemory(s string) (uint32, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	multiplier := uint64(1024)
	switch {
	case strings.HasSuffix(s, "G"), strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(strings.TrimSuffix(s, "B"), "G")
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "MB"):
		s = strings.TrimSuffix(strings.TrimSuffix(s, "B"), "M")
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "KB"):
		multiplier = 1
		s = strings.TrimSuffix(strings.TrimSuffix(s, "B"), "K")
	}

	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}

	kib := val * multiplier
	if kib > seal.MaxMemory {
		return 0, fmt.Errorf("memory value too large, limit is %dG", seal.MaxMemory/(1024*1024))
	}
	if kib < 1024 {
		return 0, fmt.Errorf("memory must be at least 1MB")
	}
	return uint32(kib), nil
}
