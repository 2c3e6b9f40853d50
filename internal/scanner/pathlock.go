package scanner

import "sync"

// pathLock serializes work per (library, path). Two jobs for the same path
// racing through the check-then-upsert sequence could otherwise both decide
// "import" and collide on the unique index.
type pathLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPathLock() *pathLock {
	return &pathLock{locks: make(map[string]*lockEntry)}
}

// lock acquires the mutex for the given key and returns its release
// function. Entries are removed once the last holder releases.
func (p *pathLock) lock(libraryID, path string) func() {
	key := libraryID + "\x00" + path

	p.mu.Lock()
	entry, ok := p.locks[key]
	if !ok {
		entry = &lockEntry{}
		p.locks[key] = entry
	}
	entry.refs++
	p.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		p.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}
