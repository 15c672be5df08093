package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the identity public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := loadKeypair()
			if err != nil {
				return err
			}
			fmt.Println(kp.PublicKey())
			return nil
		},
	}
}
