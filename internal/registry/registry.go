// Package registry classifies first words of a buffer: builtins registered
// by the host, user-defined aliases, executables on PATH, and explicit
// script paths. PATH lookups are cached with a short TTL since the
// highlighter asks on every keystroke and PATH contents change rarely.
package registry

import (
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/glintsh/glint/internal/log"
)

const (
	lookupTTL     = 10 * time.Second
	cleanupPeriod = time.Minute
)

// Registry answers whether a name is a runnable command, script, or alias.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]struct{}
	aliases  map[string]string

	// path caches name -> bool from exec.LookPath.
	path *cache.Cache
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		builtins: make(map[string]struct{}),
		aliases:  make(map[string]string),
		path:     cache.New(lookupTTL, cleanupPeriod),
	}
}

// Register adds builtin command names.
func (r *Registry) Register(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		if n != "" {
			r.builtins[n] = struct{}{}
		}
	}
}

// Alias maps name to a target command.
func (r *Registry) Alias(name, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[name] = target
}

// IsCommandAlias reports whether name is a registered alias.
func (r *Registry) IsCommandAlias(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.aliases[name]
	return ok
}

// IsCommandOrScript reports whether name is a registered builtin, an
// executable found on PATH, or (when it contains a path separator) an
// existing executable file.
func (r *Registry) IsCommandOrScript(name string) bool {
	if name == "" {
		return false
	}
	r.mu.RLock()
	_, builtin := r.builtins[name]
	r.mu.RUnlock()
	if builtin {
		return true
	}
	if strings.ContainsAny(name, `/\`) {
		return isExecutableFile(name)
	}
	if hit, found := r.path.Get(name); found {
		return hit.(bool)
	}
	_, err := exec.LookPath(name)
	ok := err == nil
	r.path.SetDefault(name, ok)
	if !ok {
		log.Debug(log.CatRegistry, "not found on PATH", "name", name)
	}
	return ok
}

// Builtins returns the registered builtin names, sorted.
func (r *Registry) Builtins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.builtins)
	sort.Strings(names)
	return names
}

// Aliases returns the registered alias names, sorted.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.aliases)
	sort.Strings(names)
	return names
}

func isExecutableFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular() && fi.Mode()&0o111 != 0
}
