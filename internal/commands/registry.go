package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	aliases map[string]string // alias -> primary name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// Register adds c under its name and aliases. Names are case-insensitive;
// a name or alias that collides with any registered one is an error.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := normalize(c.Name())
	if name == "" {
		return errors.New("command has no name")
	}
	if r.taken(name) {
		return fmt.Errorf("command already registered: %s", name)
	}
	aliases := make([]string, 0, len(c.Aliases()))
	for _, a := range c.Aliases() {
		a = normalize(a)
		if a == name || r.taken(a) || slices.Contains(aliases, a) {
			return fmt.Errorf("command alias already registered: %s", a)
		}
		aliases = append(aliases, a)
	}

	r.byName[name] = c
	for _, a := range aliases {
		r.aliases[a] = name
	}
	return nil
}

func (r *Registry) taken(s string) bool {
	_, isName := r.byName[s]
	_, isAlias := r.aliases[s]
	return isName || isAlias
}

// Find looks up a command by name or alias, ignoring case.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = normalize(name)
	if primary, ok := r.aliases[name]; ok {
		name = primary
	}
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = r.byName[name]
	}
	return result
}

// WriteUsage writes one usage line per command.
func (r *Registry) WriteUsage(w io.Writer) {
	for _, c := range r.All() {
		fmt.Fprintf(w, "  %s\n", c.Usage())
	}
}

// WriteSummary writes a table of commands, their aliases and synopses.
func (r *Registry) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, c := range r.All() {
		names := c.Name()
		if aliases := c.Aliases(); len(aliases) > 0 {
			names += ", " + strings.Join(slices.Sorted(slices.Values(aliases)), ", ")
		}
		fmt.Fprintf(tw, "  %s\t%s\n", names, c.Synopsis())
	}
	return tw.Flush()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultRegistry holds the commands registered by this package.
var DefaultRegistry = NewRegistry()

// Register adds c to the default registry and panics on a collision.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
