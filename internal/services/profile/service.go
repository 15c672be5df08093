// Package profile reads and writes the public profile documents and
// follow lists stored under each user's application namespace.
package profile

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"courier/internal/domain"
)

const (
	appRoot     = "/pub/courier.app/"
	profileDoc  = appRoot + "profile.json"
	followsRoot = appRoot + "follows/"
)

// followRecord is the stored body of one follow edge.
type followRecord struct {
	CreatedAt uint64 `json:"created_at"`
}

// Service reads and writes profiles through an injected object store.
type Service struct {
	store domain.ObjectStore
	log   *logrus.Logger
}

// New constructs a profile service.
func New(store domain.ObjectStore, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: store, log: log}
}

// Own returns the caller's profile, or nil when none is published or
// the document does not parse.
func (s *Service) Own(ctx context.Context, own domain.Keypair) (*domain.Profile, error) {
	return s.For(ctx, own.PublicKey().String())
}

// For returns the profile published by pk, or nil when absent or
// malformed. A missing profile is a normal state, not an error.
func (s *Service) For(ctx context.Context, pk string) (*domain.Profile, error) {
	body, err := s.store.Get(ctx, pk+profileDoc)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var p domain.Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, nil
	}
	return &p, nil
}

// Publish writes the caller's profile document.
func (s *Service) Publish(ctx context.Context, own domain.Keypair, p domain.Profile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, own.PublicKey().String()+profileDoc, body)
}

// Follow adds target to the caller's follow list.
func (s *Service) Follow(ctx context.Context, own domain.Keypair, target string) error {
	if _, err := domain.ParsePublicKey(target); err != nil {
		return err
	}
	body, err := json.Marshal(followRecord{CreatedAt: uint64(time.Now().UTC().Unix())})
	if err != nil {
		return err
	}
	return s.store.Put(ctx, own.PublicKey().String()+followsRoot+target, body)
}

// Unfollow removes target from the caller's follow list.
func (s *Service) Unfollow(ctx context.Context, own domain.Keypair, target string) error {
	if _, err := domain.ParsePublicKey(target); err != nil {
		return err
	}
	return s.store.Delete(ctx, own.PublicKey().String()+followsRoot+target)
}

// Followed lists the users the caller follows, fetching their profiles
// concurrently. A follow whose profile is missing or malformed is
// returned without a name; one bad profile never fails the listing.
func (s *Service) Followed(ctx context.Context, own domain.Keypair) ([]domain.FollowedUser, error) {
	paths, err := s.store.List(ctx, own.PublicKey().String()+followsRoot)
	if err != nil {
		s.log.WithError(err).Debug("follow list unavailable; treating as empty")
		return nil, nil
	}

	users := make([]domain.FollowedUser, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			pk := path[strings.LastIndex(path, "/")+1:]
			users[i] = domain.FollowedUser{PublicKey: pk}
			p, err := s.For(ctx, pk)
			if err != nil || p == nil {
				return
			}
			users[i].Name = p.Name
		}(i, path)
	}
	wg.Wait()
	return users, nil
}

// Compile-time assertion that Service implements domain.ProfileService.
var _ domain.ProfileService = (*Service)(nil)
