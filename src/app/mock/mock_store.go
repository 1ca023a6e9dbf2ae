package storemock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"portfolio/src/app"

	"github.com/stretchr/testify/mock"
)

// Store is a testify mock of app.ObjectStore.
type Store struct {
	mock.Mock
}

var _ app.ObjectStore = (*Store)(nil)

func (m *Store) List(ctx context.Context, prefix string) (app.ListResult, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(app.ListResult), args.Error(1)
}

func (m *Store) SignedURL(ctx context.Context, fullPath string) (string, error) {
	args := m.Called(ctx, fullPath)
	return args.String(0), args.Error(1)
}

// Memory is an in-memory bucket. Objects are keyed by full path and signed
// URLs are deterministic, so tests can compare them directly.
type Memory struct {
	mu      sync.Mutex
	objects map[string]app.ObjectItem
	// ListErr, when set, is returned by every List call.
	ListErr error
	// SignErr maps a full path to the error SignedURL returns for it.
	SignErr map[string]error
	signed  []string
}

var _ app.ObjectStore = (*Memory)(nil)

func NewMemory(paths ...string) *Memory {
	m := &Memory{
		objects: make(map[string]app.ObjectItem),
		SignErr: make(map[string]error),
	}
	for _, p := range paths {
		m.Put(app.ObjectItem{FullPath: p})
	}
	return m
}

// Put adds or replaces an object; Name is derived from FullPath when empty.
func (m *Memory) Put(item app.ObjectItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.Name == "" {
		item.Name = item.FullPath[strings.LastIndex(item.FullPath, "/")+1:]
	}
	m.objects[item.FullPath] = item
}

// URLFor is the URL Memory hands out for fullPath.
func URLFor(fullPath string) string {
	return "https://signed.example.com/" + fullPath + "?X-Amz-Expires=3600"
}

func (m *Memory) List(_ context.Context, prefix string) (app.ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return app.ListResult{}, m.ListErr
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	result := app.ListResult{}
	seen := map[string]bool{}
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			name := rest[:i]
			if !seen[name] {
				seen[name] = true
				result.Prefixes = append(result.Prefixes, app.PrefixItem{Name: name, FullPath: prefix + name + "/"})
			}
			continue
		}
		result.Items = append(result.Items, m.objects[key])
	}
	return result, nil
}

func (m *Memory) SignedURL(_ context.Context, fullPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signed = append(m.signed, fullPath)
	if err := m.SignErr[fullPath]; err != nil {
		return "", err
	}
	if _, ok := m.objects[fullPath]; !ok {
		return "", fmt.Errorf("%s: %w", fullPath, app.ErrNotFound)
	}
	return URLFor(fullPath), nil
}

// Signed returns every path SignedURL was asked for, in call order.
func (m *Memory) Signed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.signed...)
}
