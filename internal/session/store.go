package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const credentialsFile = "credentials.json"

type credentials struct {
	AccessToken  string `json:"access-token"`
	RefreshToken string `json:"refresh-token"`
}

// CredentialStore keeps the bearer and refresh credentials in a JSON file
// so they survive process restarts. It is written by the Manager and read
// by the HTTP client on every call.
type CredentialStore struct {
	path  string
	mu    sync.Mutex
	creds credentials
}

// NewCredentialStore loads (or initializes) the store under dir.
func NewCredentialStore(dir string) (*CredentialStore, error) {
	s := &CredentialStore{path: filepath.Join(dir, credentialsFile)}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&s.creds); err != nil {
		return nil, err
	}
	return s, nil
}

// SetTokens persists new credentials, replacing any previous ones.
func (s *CredentialStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{AccessToken: access, RefreshToken: refresh}
	return s.save()
}

// SetAccessToken replaces only the bearer credential, keeping the refresh
// credential. Used after a refresh round-trip.
func (s *CredentialStore) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.AccessToken = access
	return s.save()
}

// AccessToken returns the stored bearer credential, empty when absent.
func (s *CredentialStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.AccessToken
}

// RefreshToken returns the stored refresh credential, empty when absent.
func (s *CredentialStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.RefreshToken
}

// Clear deletes all stored credentials.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *CredentialStore) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&s.creds)
}
