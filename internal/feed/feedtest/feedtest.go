// Package feedtest provides an in-memory Fetcher serving synthetic feed payloads.
package feedtest

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher serves payloads by catalog path. Unknown paths return an empty callback
// unless Strict is set.
type Fetcher struct {
	mu       sync.Mutex
	payloads map[string]string
	errs     map[string]error
	calls    []string

	Strict bool
}

func New() *Fetcher {
	return &Fetcher{payloads: map[string]string{}, errs: map[string]error{}}
}

// Serve registers payload for path.
func (f *Fetcher) Serve(path, payload string) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[path] = payload
	return f
}

// Fail makes path return err.
func (f *Fetcher) Fail(path string, err error) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[path] = err
	return f
}

// Calls returns the fetched paths in call order.
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if p, ok := f.payloads[path]; ok {
		return []byte(p), nil
	}
	if f.Strict {
		return nil, fmt.Errorf("feedtest: no payload for %s", path)
	}
	return []byte("callback({})"), nil
}
