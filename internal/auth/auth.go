// Package auth supplies the signed-in owner identity the core scopes all
// queries and writes to.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Provider exposes the current owner and a sign-in state subscription.
type Provider interface {
	// CurrentUserID returns the owner id, or false when signed out.
	CurrentUserID() (string, bool)
	DisplayName() string
	SetDisplayName(name string) error

	// OnChange registers fn to run with the new owner id ("" on sign-out).
	OnChange(fn func(userID string)) (cancel func())

	SignOut()
}

type profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// FileProvider stores a local identity as a JSON profile in the data
// directory, creating one on first run.
type FileProvider struct {
	path string

	mu       sync.Mutex
	profile  profile
	signedIn bool
	nextID   int
	handlers map[int]func(string)
}

// NewFileProvider loads or creates the profile under dataDir
func NewFileProvider(dataDir string) (*FileProvider, error) {
	p := &FileProvider{
		path:     filepath.Join(dataDir, "profile.json"),
		handlers: make(map[int]func(string)),
	}

	data, err := os.ReadFile(p.path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &p.profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile: %w", err)
		}
	case os.IsNotExist(err):
		p.profile = profile{UserID: uuid.New().String(), DisplayName: "Gæst"}
		if err := p.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	if p.profile.UserID == "" {
		p.profile.UserID = uuid.New().String()
		if err := p.save(); err != nil {
			return nil, err
		}
	}

	p.signedIn = true
	return p, nil
}

// CurrentUserID returns the owner id, or false after sign-out
func (p *FileProvider) CurrentUserID() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.signedIn {
		return "", false
	}
	return p.profile.UserID, true
}

// DisplayName returns the user's display name
func (p *FileProvider) DisplayName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.DisplayName
}

// SetDisplayName updates and persists the display name
func (p *FileProvider) SetDisplayName(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.DisplayName = name
	return p.save()
}

// OnChange registers a sign-in state handler. The returned cancel func is
// idempotent.
func (p *FileProvider) OnChange(fn func(string)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.handlers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.handlers, id)
		p.mu.Unlock()
	}
}

// SignOut marks the session signed out and fires change handlers. The
// stored profile is kept; the next run signs back in.
func (p *FileProvider) SignOut() {
	p.mu.Lock()
	if !p.signedIn {
		p.mu.Unlock()
		return
	}
	p.signedIn = false
	handlers := make([]func(string), 0, len(p.handlers))
	for _, fn := range p.handlers {
		handlers = append(handlers, fn)
	}
	p.mu.Unlock()

	for _, fn := range handlers {
		fn("")
	}
}

func (p *FileProvider) save() error {
	data, err := json.MarshalIndent(p.profile, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return os.WriteFile(p.path, data, 0644)
}
