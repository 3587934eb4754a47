// Package auth implements the optional password gate in front of the web page.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedUsers is returned for an inline user list that is not user:secret pairs.
var ErrMalformedUsers = errors.New("malformed user list")

// credentialsFile is the on-disk layout of the credential store.
type credentialsFile struct {
	Passwords map[string]string `yaml:"passwords"`
}

// Store maps usernames to secrets. It is read-only once built.
type Store struct {
	users map[string][sha256.Size]byte
}

// NewStore copies users into a store. Empty usernames are ignored.
func NewStore(users map[string]string) *Store {
	s := &Store{users: make(map[string][sha256.Size]byte, len(users))}
	for user, secret := range users {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		s.users[user] = sha256.Sum256([]byte(secret))
	}
	return s
}

// LoadStore merges the YAML credentials file (when path is set) with an inline
// "alice:secret,bob:pw" list. Inline entries win on conflict.
func LoadStore(path, inline string) (*Store, error) {
	users := map[string]string{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		var f credentialsFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse credentials file: %w", err)
		}
		for u, p := range f.Passwords {
			users[u] = p
		}
	}

	parsed, err := ParseUsers(inline)
	if err != nil {
		return nil, err
	}
	for u, p := range parsed {
		users[u] = p
	}
	return NewStore(users), nil
}

// ParseUsers reads a comma separated list of user:secret pairs.
func ParseUsers(raw string) (map[string]string, error) {
	users := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, secret, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(user) == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedUsers, pair)
		}
		users[strings.TrimSpace(user)] = secret
	}
	return users, nil
}

// Enabled reports whether any credentials are configured.
func (s *Store) Enabled() bool {
	return s != nil && len(s.users) > 0
}

// Len is the number of configured users.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.users)
}

// Verify checks a username/secret pair. Unknown users still go through a full
// comparison so response time does not reveal which usernames exist.
func (s *Store) Verify(user, secret string) bool {
	if !s.Enabled() {
		return false
	}
	want, known := s.users[user]
	got := sha256.Sum256([]byte(secret))
	match := subtle.ConstantTimeCompare(got[:], want[:]) == 1
	return known && match
}
