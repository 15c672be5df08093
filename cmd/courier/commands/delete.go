package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"courier/internal/domain"
)

// delete <peer> <id>...: delete messages you wrote in the conversation
// with <peer>, by message id.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <peer> <id>...",
		Short: "Delete specific messages you wrote",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := domain.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("peer: %w", err)
			}
			kp, err := signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := wire.Conversations.DeleteMany(cmd.Context(), kp, peer, args[1:]); err != nil {
				return err
			}
			fmt.Printf("deleted %d message(s)\n", len(args)-1)
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <peer>",
		Short: "Delete your whole side of a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := domain.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("peer: %w", err)
			}
			kp, err := signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := wire.Conversations.Clear(cmd.Context(), kp, peer); err != nil {
				return err
			}
			fmt.Println("cleared")
			return nil
		},
	}
}
