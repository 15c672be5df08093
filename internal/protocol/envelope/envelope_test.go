package envelope

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"courier/internal/domain"
)

func randomKeypair(t *testing.T) domain.Keypair {
	t.Helper()
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return domain.KeypairFromSeed(seed)
}

func TestEnvelope_RoundTrip(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)
	const content = "hello bob"

	env, err := New(alice, bob.PublicKey(), content)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Bob reads with Alice as the other participant.
	got, err := env.DecryptContent(bob, alice.PublicKey())
	if err != nil {
		t.Fatalf("DecryptContent: %v", err)
	}
	if got != content {
		t.Fatalf("content = %q, want %q", got, content)
	}
	sender, err := env.DecryptSender(bob, alice.PublicKey())
	if err != nil {
		t.Fatalf("DecryptSender: %v", err)
	}
	if sender != alice.PublicKey().String() {
		t.Fatalf("sender = %q, want %q", sender, alice.PublicKey().String())
	}
	ok, err := env.Verify(got, sender)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("signature did not verify")
	}
}

func TestEnvelope_SenderCanReadOwnMessage(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)

	env, err := New(alice, bob.PublicKey(), "note to the channel")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Alice reads her own stored message with Bob as the other
	// participant; the channel key is role-symmetric.
	got, err := env.DecryptContent(alice, bob.PublicKey())
	if err != nil {
		t.Fatalf("DecryptContent as sender: %v", err)
	}
	if got != "note to the channel" {
		t.Fatalf("content = %q", got)
	}
}

func TestEnvelope_ThirdPartyCannotDecrypt(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)
	eve := randomKeypair(t)

	env, err := New(alice, bob.PublicKey(), "secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := env.DecryptContent(eve, alice.PublicKey()); !errors.Is(err, domain.ErrDecryptFailure) {
		t.Fatalf("want ErrDecryptFailure, got %v", err)
	}
}

// Flipping any bit of the encrypted fields or the signature must yield a
// decrypt failure or a failed verification, never a false positive.
func TestEnvelope_TamperDetection(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)

	env, err := New(alice, bob.PublicKey(), "tamper with me")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	check := func(t *testing.T, mutated Envelope) {
		t.Helper()
		content, err := mutated.DecryptContent(bob, alice.PublicKey())
		if err != nil {
			return // decrypt failure is an acceptable outcome
		}
		sender, err := mutated.DecryptSender(bob, alice.PublicKey())
		if err != nil {
			return
		}
		ok, err := mutated.Verify(content, sender)
		if err == nil && ok {
			t.Fatal("tampered envelope verified")
		}
	}

	t.Run("content", func(t *testing.T) {
		for i := range env.EncryptedContent {
			m := env
			m.EncryptedContent = append([]byte(nil), env.EncryptedContent...)
			m.EncryptedContent[i] ^= 0x01
			check(t, m)
		}
	})
	t.Run("sender", func(t *testing.T) {
		for i := range env.EncryptedSender {
			m := env
			m.EncryptedSender = append([]byte(nil), env.EncryptedSender...)
			m.EncryptedSender[i] ^= 0x01
			check(t, m)
		}
	})
	t.Run("signature", func(t *testing.T) {
		for i := range env.Signature {
			m := env
			m.Signature = append([]byte(nil), env.Signature...)
			m.Signature[i] ^= 0x01
			check(t, m)
		}
	})
}

func TestVerify_MalformedSender(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)

	env, err := New(alice, bob.PublicKey(), "hi")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := env.Verify("hi", "not a key 0OIl"); !errors.Is(err, domain.ErrInvalidKey) {
		t.Fatalf("want ErrInvalidKey, got %v", err)
	}
}

func TestVerify_TruncatedSignature(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)

	env, err := New(alice, bob.PublicKey(), "hi")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	env.Signature = env.Signature[:32]
	ok, err := env.Verify("hi", alice.PublicKey().String())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("truncated signature verified")
	}
}

func TestEnvelope_JSONFieldNames(t *testing.T) {
	alice := randomKeypair(t)
	bob := randomKeypair(t)

	env, err := New(alice, bob.PublicKey(), "hi")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, field := range []string{"timestamp", "encrypted_sender", "encrypted_content", "signature_bytes"} {
		if _, ok := m[field]; !ok {
			t.Fatalf("serialized envelope is missing %q", field)
		}
	}
}

func TestNewID_Canonical(t *testing.T) {
	hyphenated := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	id := NewID()
	if !hyphenated.MatchString(id) {
		t.Fatalf("id %q is not canonical hyphenated UUID v4", id)
	}
	if id == NewID() {
		t.Fatal("two generated ids collided")
	}
}
