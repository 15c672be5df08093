package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"courier/internal/domain"
)

// send <peer> <message>: encrypt and store a message for <peer>.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt and send a message to a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := domain.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("peer: %w", err)
			}
			kp, err := signedIn(cmd.Context())
			if err != nil {
				return err
			}
			id, err := wire.Conversations.Send(cmd.Context(), kp, peer, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("sent %s\n", id)
			return nil
		},
	}
}
