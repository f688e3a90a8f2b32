// Package quote holds the remembrance prompts shown during and after a
// session.
package quote

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is an immutable set of unique prompts.
type Store struct {
	intn    func(n int) int
	prompts []string
}

type file struct {
	Quotes []string `yaml:"quotes"`
}

// New builds a store from prompts. Surrounding whitespace is trimmed, empty
// entries are dropped and duplicates keep their first position.
func New(prompts []string) *Store {
	seen := make(map[string]struct{}, len(prompts))
	unique := make([]string, 0, len(prompts))

	for _, p := range prompts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}

		unique = append(unique, p)
	}

	return &Store{
		prompts: unique,
		intn:    rand.IntN,
	}
}

// Random returns a prompt chosen uniformly at random, or an empty string
// if the store is empty.
func (s *Store) Random() string {
	if len(s.prompts) == 0 {
		return ""
	}

	return s.prompts[s.intn(len(s.prompts))]
}

// All returns a copy of every prompt in the store.
func (s *Store) All() []string {
	return append([]string(nil), s.prompts...)
}

// Len returns the number of unique prompts.
func (s *Store) Len() int {
	return len(s.prompts)
}

// Load reads a quotes file from fsys.
func Load(fsys fs.FS, path string) (*Store, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	return parse(b, path)
}

// LoadFile reads a quotes file from disk.
func LoadFile(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parse(b, path)
}

func parse(b []byte, path string) (*Store, error) {
	var f file

	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return New(f.Quotes), nil
}
