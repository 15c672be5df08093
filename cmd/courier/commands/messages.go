package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"courier/internal/domain"
)

// messages <peer>: fetch both sides of the conversation with <peer>,
// decrypted and ordered by timestamp.
func messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <peer>",
		Short: "Fetch and decrypt a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := domain.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("peer: %w", err)
			}
			kp, err := loadKeypair()
			if err != nil {
				return err
			}
			msgs, err := wire.Conversations.Fetch(cmd.Context(), kp, peer)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Println("no messages")
				return nil
			}
			for _, m := range msgs {
				mark := ""
				if !m.Verified {
					mark = " [unverified]"
				}
				ts := time.Unix(int64(m.Timestamp), 0).UTC().Format(time.RFC3339)
				fmt.Printf("%s %s%s: %s\n", ts, m.Sender, mark, m.Content)
			}
			return nil
		},
	}
}
