package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <public-key>",
		Short: "Record a followed user under your namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := wire.Profiles.Follow(cmd.Context(), kp, args[0]); err != nil {
				return err
			}
			fmt.Println("followed", args[0])
			return nil
		},
	}
}

func unfollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <public-key>",
		Short: "Remove a followed user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := wire.Profiles.Unfollow(cmd.Context(), kp, args[0]); err != nil {
				return err
			}
			fmt.Println("unfollowed", args[0])
			return nil
		},
	}
}

func followsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follows",
		Short: "List followed users with their published names",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := loadKeypair()
			if err != nil {
				return err
			}
			users, err := wire.Profiles.Followed(cmd.Context(), kp)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println("not following anyone")
				return nil
			}
			for _, u := range users {
				if u.Name != "" {
					fmt.Printf("%s (%s)\n", u.PublicKey, u.Name)
					continue
				}
				fmt.Println(u.PublicKey)
			}
			return nil
		},
	}
}
