package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"courier/internal/domain"
)

// profile [public-key]: print a published profile. With no argument,
// prints your own.
func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [public-key]",
		Short: "Print a profile document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *domain.Profile
				err error
			)
			if len(args) == 1 {
				p, err = wire.Profiles.For(cmd.Context(), args[0])
			} else {
				var kp domain.Keypair
				kp, err = loadKeypair()
				if err != nil {
					return err
				}
				p, err = wire.Profiles.Own(cmd.Context(), kp)
			}
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Println("no profile published")
				return nil
			}
			fmt.Printf("Name:   %s\n", p.Name)
			if p.Bio != "" {
				fmt.Printf("Bio:    %s\n", p.Bio)
			}
			if p.Status != "" {
				fmt.Printf("Status: %s\n", p.Status)
			}
			if p.Image != "" {
				fmt.Printf("Image:  %s\n", p.Image)
			}
			return nil
		},
	}
}

func publishProfileCmd() *cobra.Command {
	var p domain.Profile

	cmd := &cobra.Command{
		Use:   "publish-profile",
		Short: "Publish your own profile document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.Name == "" {
				return fmt.Errorf("--name is required")
			}
			kp, err := signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := wire.Profiles.Publish(cmd.Context(), kp, p); err != nil {
				return err
			}
			fmt.Println("profile published")
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "display name")
	cmd.Flags().StringVar(&p.Bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&p.Status, "status", "", "status line")
	cmd.Flags().StringVar(&p.Image, "image", "", "image URL")
	return cmd
}
