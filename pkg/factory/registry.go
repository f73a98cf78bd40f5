package factory

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/inercia/go-langextract/pkg/llm"
)

// ProviderDescriptor describes one registered backend. Descriptors are never
// modified after registration; registering the same name again replaces it.
type ProviderDescriptor struct {
	Name        string
	Aliases     []string
	Patterns    []*regexp.Regexp
	Priority    int
	Constructor llm.Constructor

	// EnvDefaults maps an option key to the environment variables consulted,
	// in order, when the caller did not set that option.
	EnvDefaults map[string][]string

	seq uint64
}

// RegisterOption customizes a registration
type RegisterOption func(*ProviderDescriptor)

// WithPriority sets the priority used when several providers match a model id
func WithPriority(priority int) RegisterOption {
	return func(d *ProviderDescriptor) {
		d.Priority = priority
	}
}

// WithAliases adds alternative names accepted for explicit provider lookups
func WithAliases(aliases ...string) RegisterOption {
	return func(d *ProviderDescriptor) {
		d.Aliases = append(d.Aliases, aliases...)
	}
}

// WithEnvDefault makes option key default to the first non-empty variable in envVars
func WithEnvDefault(key string, envVars ...string) RegisterOption {
	return func(d *ProviderDescriptor) {
		if d.EnvDefaults == nil {
			d.EnvDefaults = make(map[string][]string)
		}
		d.EnvDefaults[key] = append(d.EnvDefaults[key], envVars...)
	}
}

// matches returns the longest pattern source matching modelID, if any
func (d *ProviderDescriptor) matches(modelID string) (string, bool) {
	best, found := "", false
	for _, p := range d.Patterns {
		if p.MatchString(modelID) {
			if src := p.String(); !found || len(src) > len(best) {
				best, found = src, true
			}
		}
	}
	return best, found
}

func (d *ProviderDescriptor) answersTo(name string) bool {
	if strings.EqualFold(d.Name, name) {
		return true
	}
	for _, alias := range d.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Registry maps provider names to descriptors and loads the builtin providers
// on first use
type Registry struct {
	mu             sync.RWMutex
	providers      map[string]*ProviderDescriptor
	seq            uint64
	builtins       []Builtin
	builtinsLoaded bool
}

// NewRegistry creates an empty registry that will load the given builtins
// the first time LoadBuiltinsOnce runs
func NewRegistry(builtins ...Builtin) *Registry {
	return &Registry{
		providers: make(map[string]*ProviderDescriptor),
		builtins:  builtins,
	}
}

var defaultRegistry = NewRegistry(Builtins()...)

// DefaultRegistry returns the process-wide registry used by the package-level functions
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register inserts or replaces the provider called name. Patterns are regular
// expressions matched against model ids.
func (r *Registry) Register(name string, patterns []string, constructor llm.Constructor, opts ...RegisterOption) error {
	descriptor, err := newDescriptor(name, patterns, constructor, opts...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(descriptor)
	return nil
}

// MustRegister is like Register but panics on invalid input
func (r *Registry) MustRegister(name string, patterns []string, constructor llm.Constructor, opts ...RegisterOption) {
	if err := r.Register(name, patterns, constructor, opts...); err != nil {
		panic(err)
	}
}

func newDescriptor(name string, patterns []string, constructor llm.Constructor, opts ...RegisterOption) (*ProviderDescriptor, error) {
	if name == "" {
		return nil, llm.NewConfigurationError("invalid_provider", "provider name is required")
	}
	if constructor == nil {
		return nil, llm.NewConfigurationError("invalid_provider", "provider %q has no constructor", name)
	}

	descriptor := &ProviderDescriptor{
		Name:        name,
		Patterns:    make([]*regexp.Regexp, 0, len(patterns)),
		Constructor: constructor,
	}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &llm.Error{
				Code:    "invalid_pattern",
				Message: fmt.Sprintf("provider %q: invalid pattern %q: %v", name, pattern, err),
				Type:    llm.ErrorTypeConfiguration,
				Err:     err,
			}
		}
		descriptor.Patterns = append(descriptor.Patterns, re)
	}
	for _, opt := range opts {
		opt(descriptor)
	}
	return descriptor, nil
}

// store must be called with the write lock held
func (r *Registry) store(d *ProviderDescriptor) {
	key := normalize(d.Name)
	if _, exists := r.providers[key]; exists {
		llm.Logger().Debug("replacing provider registration", zap.String("provider", d.Name))
	}
	r.seq++
	d.seq = r.seq
	r.providers[key] = d
	llm.Logger().Debug("registered provider",
		zap.String("provider", d.Name),
		zap.Int("patterns", len(d.Patterns)),
		zap.Int("priority", d.Priority))
}

// Lookup returns the provider registered under name or one of its aliases.
// The comparison is case-insensitive.
func (r *Registry) Lookup(name string) (*ProviderDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) (*ProviderDescriptor, bool) {
	if d, ok := r.providers[normalize(name)]; ok {
		return d, true
	}
	// Aliases are scanned in registration order so a later alias claim loses
	// to the earliest one consistently.
	for _, d := range r.sortedLocked(bySeq) {
		if d.answersTo(name) {
			return d, true
		}
	}
	return nil, false
}

// Match selects the provider whose patterns match modelID.
//
// The highest priority wins. Among equal priorities the provider whose
// matching pattern is longest wins. Anything still tied is reported as an
// ambiguous configuration error listing the candidates.
func (r *Registry) Match(modelID string) (*ProviderDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type candidate struct {
		descriptor *ProviderDescriptor
		pattern    string
	}

	var best []candidate
	matched := 0
	for _, d := range r.sortedLocked(byName) {
		pattern, ok := d.matches(modelID)
		if !ok {
			continue
		}
		matched++
		c := candidate{descriptor: d, pattern: pattern}
		switch {
		case len(best) == 0:
			best = []candidate{c}
		case d.Priority > best[0].descriptor.Priority:
			best = []candidate{c}
		case d.Priority < best[0].descriptor.Priority:
		case len(pattern) > len(best[0].pattern):
			best = []candidate{c}
		case len(pattern) == len(best[0].pattern):
			best = append(best, c)
		}
	}

	switch len(best) {
	case 0:
		return nil, llm.NewConfigurationError(llm.CodeProviderNotFound,
			"no provider found matching model id %q (available: %s)", modelID, strings.Join(r.namesLocked(), ", "))
	case 1:
		if matched > 1 {
			llm.Logger().Info("several providers match model id, picked the most specific",
				zap.String("model_id", modelID),
				zap.String("provider", best[0].descriptor.Name),
				zap.String("pattern", best[0].pattern),
				zap.Int("candidates", matched))
		}
		return best[0].descriptor, nil
	}

	names := make([]string, 0, len(best))
	for _, c := range best {
		names = append(names, fmt.Sprintf("%s (%s)", c.descriptor.Name, c.pattern))
	}
	return nil, llm.NewConfigurationError(llm.CodeAmbiguousProvider,
		"model id %q matches several providers with the same priority and specificity: %s; set the provider explicitly",
		modelID, strings.Join(names, ", "))
}

// List returns the registered provider names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.providers))
	for _, d := range r.providers {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Clear removes every registration and forgets that builtins were loaded, so
// the next resolution loads them again
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = make(map[string]*ProviderDescriptor)
	r.builtinsLoaded = false
	llm.Logger().Debug("provider registry cleared")
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type descriptorOrder int

const (
	byName descriptorOrder = iota
	bySeq
)

func (r *Registry) sortedLocked(order descriptorOrder) []*ProviderDescriptor {
	out := make([]*ProviderDescriptor, 0, len(r.providers))
	for _, d := range r.providers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == bySeq {
			return out[i].seq < out[j].seq
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Register adds a provider to the default registry
func Register(name string, patterns []string, constructor llm.Constructor, opts ...RegisterOption) error {
	return defaultRegistry.Register(name, patterns, constructor, opts...)
}

// GetProvider returns the provider registered in the default registry under name
func GetProvider(name string) (*ProviderDescriptor, bool) {
	defaultRegistry.LoadBuiltinsOnce()
	return defaultRegistry.Lookup(name)
}

// ListProviders returns all provider names of the default registry, builtins included
func ListProviders() []string {
	defaultRegistry.LoadBuiltinsOnce()
	return defaultRegistry.List()
}

// Clear resets the default registry
func Clear() {
	defaultRegistry.Clear()
}
