package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// recover <word>...: restore an identity from its recovery phrase. The
// phrase can be given as separate args or one quoted string.
func recoverCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "recover <word>...",
		Short: "Restore an identity from a recovery phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			phrase := strings.Join(args, " ")
			kp, err := wire.Identity.FromRecoveryPhrase(phrase, passphrase, language)
			if err != nil {
				return err
			}
			fmt.Printf("Identity restored.\nPublic key: %s\n", kp.PublicKey())
			return nil
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "wordlist language (default english)")
	return cmd
}
