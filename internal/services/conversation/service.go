// Package conversation orchestrates pairwise conversations against the
// object store: listing, fetching, decrypting, and verifying stored
// envelopes into a time-ordered sequence, and managing message deletion
// with backpressure-aware batching.
package conversation

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"courier/internal/crypto"
	"courier/internal/domain"
	"courier/internal/protocol/envelope"
)

// Policy holds the deletion pacing knobs. These are backend etiquette,
// not protocol requirements, so they are injected rather than fixed.
type Policy struct {
	// DeleteBatchSize is how many deletes are issued concurrently per
	// batch during Clear.
	DeleteBatchSize int
	// BatchPause is the pause between full delete batches.
	BatchPause time.Duration
	// RateLimitBackoff is the wait before the single retry of a delete
	// the backend answered with 429.
	RateLimitBackoff time.Duration
}

// DefaultPolicy returns the stock pacing: batches of 5, 200ms between
// batches, 1s backoff on rate limiting.
func DefaultPolicy() Policy {
	return Policy{
		DeleteBatchSize:  5,
		BatchPause:       200 * time.Millisecond,
		RateLimitBackoff: time.Second,
	}
}

// Service reads and writes conversations through an injected object
// store. It holds no per-conversation state; every operation derives
// what it needs from the caller's keypair and the peer key.
type Service struct {
	store  domain.ObjectStore
	policy Policy
	log    *logrus.Logger
}

// New constructs a conversation service. A zero-valued policy field
// falls back to its default.
func New(store domain.ObjectStore, policy Policy, log *logrus.Logger) *Service {
	def := DefaultPolicy()
	if policy.DeleteBatchSize <= 0 {
		policy.DeleteBatchSize = def.DeleteBatchSize
	}
	if policy.BatchPause <= 0 {
		policy.BatchPause = def.BatchPause
	}
	if policy.RateLimitBackoff <= 0 {
		policy.RateLimitBackoff = def.RateLimitBackoff
	}
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: store, policy: policy, log: log}
}

// Fetch returns every readable message of the conversation with peer,
// sorted ascending by timestamp. Messages may live in either party's
// namespace under the shared path suffix, so both are listed. A listing
// failure means "no objects on that side"; a corrupt, unparsable, or
// undecryptable object is skipped without affecting the rest.
func (s *Service) Fetch(ctx context.Context, own domain.Keypair, peer domain.PublicKey) ([]domain.DecryptedMessage, error) {
	suffix, err := crypto.ConversationPath(own, peer)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, prefix := range []string{
		own.PublicKey().String() + suffix,
		peer.String() + suffix,
	} {
		listed, err := s.store.List(ctx, prefix)
		if err != nil {
			s.log.WithError(err).WithField("prefix", prefix).Debug("list failed; treating as empty")
			continue
		}
		paths = append(paths, listed...)
	}

	// Fan out the gets; each goroutine owns one result slot.
	slots := make([]*domain.DecryptedMessage, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			slots[i] = s.readOne(ctx, own, peer, path)
		}(i, path)
	}
	wg.Wait()

	msgs := make([]domain.DecryptedMessage, 0, len(paths))
	for _, m := range slots {
		if m != nil {
			msgs = append(msgs, *m)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })
	return msgs, nil
}

// readOne fetches and decodes a single stored envelope. Any failure
// returns nil: one hostile or corrupt object must not deny access to
// the rest of the conversation.
func (s *Service) readOne(ctx context.Context, own domain.Keypair, peer domain.PublicKey, path string) *domain.DecryptedMessage {
	body, err := s.store.Get(ctx, path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Debug("skipping unreadable object")
		return nil
	}
	var env envelope.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		s.log.WithField("path", path).Debug("skipping unparsable object")
		return nil
	}
	content, err := env.DecryptContent(own, peer)
	if err != nil {
		s.log.WithField("path", path).Debug("skipping undecryptable content")
		return nil
	}
	sender, err := env.DecryptSender(own, peer)
	if err != nil {
		s.log.WithField("path", path).Debug("skipping undecryptable sender")
		return nil
	}
	verified, err := env.Verify(content, sender)
	if err != nil {
		verified = false
	}
	return &domain.DecryptedMessage{
		Sender:    sender,
		Content:   content,
		Timestamp: env.Timestamp,
		Verified:  verified,
	}
}

// Send encrypts content for recipient and stores it under the caller's
// own namespace. Returns the generated object id.
func (s *Service) Send(ctx context.Context, own domain.Keypair, recipient domain.PublicKey, content string) (string, error) {
	env, err := envelope.New(own, recipient, content)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	suffix, err := crypto.ConversationPath(own, recipient)
	if err != nil {
		return "", err
	}
	id := envelope.NewID()
	if err := s.store.Put(ctx, s.objectPath(own, suffix, id), body); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes one message by id from the caller's own namespace.
func (s *Service) Delete(ctx context.Context, own domain.Keypair, peer domain.PublicKey, id string) error {
	suffix, err := crypto.ConversationPath(own, peer)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, s.objectPath(own, suffix, id))
}

// DeleteMany removes several messages concurrently. It fails on the
// first failing id in input order; deletes that already succeeded are
// not undone. An empty id list is a no-op.
func (s *Service) DeleteMany(ctx context.Context, own domain.Keypair, peer domain.PublicKey, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	suffix, err := crypto.ConversationPath(own, peer)
	if err != nil {
		return err
	}

	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.store.Delete(ctx, s.objectPath(own, suffix, id))
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return &domain.BatchError{ID: ids[i], Err: err}
		}
	}
	return nil
}

// Clear removes every message the caller stored in the conversation
// with peer. Deletes go out in concurrent batches with a pause between
// full batches; a batch member the backend rate-limits is retried once
// after a backoff before the call fails. An absent namespace or an
// empty conversation is success. Batches already completed stay
// deleted when a later batch fails.
func (s *Service) Clear(ctx context.Context, own domain.Keypair, peer domain.PublicKey) error {
	suffix, err := crypto.ConversationPath(own, peer)
	if err != nil {
		return err
	}
	paths, err := s.store.List(ctx, own.PublicKey().String()+suffix)
	if err != nil || len(paths) == 0 {
		return nil
	}

	batch := s.policy.DeleteBatchSize
	for start := 0; start < len(paths); start += batch {
		chunk := paths[start:min(start+batch, len(paths))]

		errs := make([]error, len(chunk))
		var wg sync.WaitGroup
		for i, path := range chunk {
			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				errs[i] = s.store.Delete(ctx, path)
			}(i, path)
		}
		wg.Wait()

		for i, err := range errs {
			if err == nil {
				continue
			}
			if domain.IsRateLimited(err) {
				s.log.WithField("path", chunk[i]).Info("rate limited; retrying delete once")
				if serr := s.sleep(ctx, s.policy.RateLimitBackoff); serr != nil {
					return serr
				}
				err = s.store.Delete(ctx, chunk[i])
			}
			if err != nil {
				return &domain.BatchError{ID: chunk[i], Err: err}
			}
		}

		// Pause before the next batch to respect backend rate limits.
		if len(chunk) == batch && start+batch < len(paths) {
			if err := s.sleep(ctx, s.policy.BatchPause); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) objectPath(own domain.Keypair, suffix, id string) string {
	return own.PublicKey().String() + suffix + id + ".json"
}

// sleep waits for d or until ctx is done.
func (s *Service) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Compile-time assertion that Service implements domain.ConversationService.
var _ domain.ConversationService = (*Service)(nil)
