package domain

// DecryptedMessage is the application-visible view of one stored message.
// It is recomputed from the stored envelope and the reader's key material
// on every fetch, never persisted.
type DecryptedMessage struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp uint64 `json:"timestamp"`
	Verified  bool   `json:"verified"`
}
