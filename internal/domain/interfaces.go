package domain

import "context"

// ObjectStore is the boundary with the remote key-value object store.
// Paths are rooted at an owner public key, e.g.
// "{owner}/pub/private_messages/{digest}/{id}.json". The store offers no
// transactional or ordering guarantees; every call is fallible and
// callers decide per operation how much failure to tolerate.
type ObjectStore interface {
	Put(ctx context.Context, path string, body []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, path string) error
}

// ConversationService reads and writes pairwise encrypted conversations.
type ConversationService interface {
	Fetch(ctx context.Context, own Keypair, peer PublicKey) ([]DecryptedMessage, error)
	Send(ctx context.Context, own Keypair, recipient PublicKey, content string) (string, error)
	Delete(ctx context.Context, own Keypair, peer PublicKey, id string) error
	DeleteMany(ctx context.Context, own Keypair, peer PublicKey, ids []string) error
	Clear(ctx context.Context, own Keypair, peer PublicKey) error
}

// ProfileService reads and writes profile documents and follow lists.
type ProfileService interface {
	Own(ctx context.Context, own Keypair) (*Profile, error)
	For(ctx context.Context, pk string) (*Profile, error)
	Publish(ctx context.Context, own Keypair, p Profile) error
	Follow(ctx context.Context, own Keypair, target string) error
	Unfollow(ctx context.Context, own Keypair, target string) error
	Followed(ctx context.Context, own Keypair) ([]FollowedUser, error)
}

// IdentityService creates and recovers the local signing keypair.
type IdentityService interface {
	Generate(passphrase string) (Keypair, string, error)
	FromRecoveryPhrase(phrase, passphrase string, language string) (Keypair, error)
	Load(passphrase string) (Keypair, error)
}
