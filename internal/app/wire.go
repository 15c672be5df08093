package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"courier/internal/domain"
	"courier/internal/homeserver"
	"courier/internal/services/conversation"
	identitysvc "courier/internal/services/identity"
	profilesvc "courier/internal/services/profile"
	"courier/internal/store"
)

// Wire bundles the stores, services, and clients the CLI runs on.
type Wire struct {
	Config        Config
	Log           *logrus.Logger
	Keystore      *store.Keystore
	Identity      domain.IdentityService
	Homeserver    *homeserver.Client
	Conversations domain.ConversationService
	Profiles      domain.ProfileService
}

// NewWire constructs the dependency graph from cfg. A nil httpc falls
// back to http.DefaultClient.
func NewWire(cfg Config, httpc *http.Client) (*Wire, error) {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ks := store.NewKeystore(cfg.Home)
	hs := homeserver.NewClient(cfg.Homeserver, httpc)

	return &Wire{
		Config:        cfg,
		Log:           log,
		Keystore:      ks,
		Identity:      identitysvc.New(ks),
		Homeserver:    hs,
		Conversations: conversation.New(hs, cfg.Policy(), log),
		Profiles:      profilesvc.New(hs, log),
	}, nil
}
