package homeserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"courier/internal/domain"
)

// sessionContext is the domain separator for sign-in signatures.
const sessionContext = "courier-session"

// Client is the HTTP implementation of domain.ObjectStore. Reads work
// without a session; writes and deletes require Signin first.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// NewClient returns a client for the homeserver at base. A nil httpc
// falls back to http.DefaultClient.
func NewClient(base string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(base, "/"), http: httpc}
}

// sessionRequest is the sign-in body: the caller proves key ownership by
// signing "{sessionContext}:{public key}:{timestamp}".
type sessionRequest struct {
	PublicKey string `json:"public_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// SessionMessage returns the exact bytes signed during sign-in for pk at
// unix time ts. Shared with the server implementation.
func SessionMessage(pk string, ts int64) []byte {
	return []byte(sessionContext + ":" + pk + ":" + strconv.FormatInt(ts, 10))
}

// Signin establishes a session for kp. It must succeed before any write
// or delete is attempted.
func (c *Client) Signin(ctx context.Context, kp domain.Keypair) error {
	pk := kp.PublicKey().String()
	ts := time.Now().UTC().Unix()
	body, err := json.Marshal(sessionRequest{
		PublicKey: pk,
		Timestamp: ts,
		Signature: base64.StdEncoding.EncodeToString(kp.Sign(SessionMessage(pk, ts))),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/session", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("signin: %s", resp.Status)
	}
	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return err
	}
	c.token = sr.Token
	return nil
}

// Put stores body at path.
func (c *Client) Put(ctx context.Context, path string, body []byte) error {
	if c.token == "" {
		return domain.ErrNoSession
	}
	resp, err := c.do(ctx, http.MethodPut, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &domain.StoreError{Op: "put", Path: path, Status: resp.StatusCode}
	}
	return nil
}

// Get fetches the object at path.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, &domain.StoreError{Op: "get", Path: path, Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// List returns the paths stored under prefix, which must end in "/".
// The server answers with one path per line.
func (c *Client) List(ctx context.Context, prefix string) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, prefix, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, &domain.StoreError{Op: "list", Path: prefix, Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

// Delete removes the object at path. A 429 response surfaces as a
// rate-limited StoreError so callers can back off and retry.
func (c *Client) Delete(ctx context.Context, path string) error {
	if c.token == "" {
		return domain.ErrNoSession
	}
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &domain.StoreError{Op: "delete", Path: path, Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}

// Compile-time assertion that Client implements domain.ObjectStore.
var _ domain.ObjectStore = (*Client)(nil)
