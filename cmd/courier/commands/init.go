package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a local identity and print its recovery phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if wire.Keystore.Exists() {
				return fmt.Errorf("identity already exists in %s", home)
			}
			kp, phrase, err := wire.Identity.Generate(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Identity created.\nPublic key: %s\n\nRecovery phrase (write it down, it is shown once):\n  %s\n", kp.PublicKey(), phrase)
			return nil
		},
	}
}
