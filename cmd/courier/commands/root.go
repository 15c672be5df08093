package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"courier/internal/app"
	"courier/internal/domain"
)

var (
	home       string
	passphrase string
	serverURL  string
	wire       *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "courier",
		Short: "End-to-end encrypted messaging over a public-key object store",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".courier")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.Homeserver = serverURL
			}

			wire, err = app.NewWire(cfg, nil)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.courier)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	root.PersistentFlags().StringVar(&serverURL, "homeserver", "", "homeserver base URL (overrides config)")

	root.AddCommand(
		initCmd(), recoverCmd(), whoamiCmd(),
		sendCmd(), messagesCmd(), deleteCmd(), clearCmd(),
		followCmd(), unfollowCmd(), followsCmd(),
		profileCmd(), publishProfileCmd(),
	)
	return root.Execute()
}

// loadKeypair unlocks the stored identity with the -p passphrase.
func loadKeypair() (domain.Keypair, error) {
	if passphrase == "" {
		return domain.Keypair{}, fmt.Errorf("passphrase required (-p)")
	}
	return wire.Identity.Load(passphrase)
}

// signedIn unlocks the identity and establishes a homeserver session for
// commands that write to the store.
func signedIn(ctx context.Context) (domain.Keypair, error) {
	kp, err := loadKeypair()
	if err != nil {
		return domain.Keypair{}, err
	}
	if err := wire.Homeserver.Signin(ctx, kp); err != nil {
		return domain.Keypair{}, fmt.Errorf("signin: %w", err)
	}
	return kp, nil
}
