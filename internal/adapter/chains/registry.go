package chains

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"bridge-tokeninfo/internal/domain/entity"
	domainService "bridge-tokeninfo/internal/domain/service"

	"gopkg.in/yaml.v3"
)

// Compile-time check
var _ domainService.ChainRegistry = (*Registry)(nil)

//go:embed chains.yaml
var defaultChainsYAML []byte

// Registry is a static, read-only table of the chains this service understands.
type Registry struct {
	chains map[entity.ChainSymbol]entity.ChainProperties
}

// NewRegistry builds a registry from the given properties. Later entries win on duplicate symbols.
func NewRegistry(props ...entity.ChainProperties) *Registry {
	r := &Registry{chains: make(map[entity.ChainSymbol]entity.ChainProperties, len(props))}
	for _, p := range props {
		r.chains[p.ChainSymbol] = p
	}
	return r
}

// NewDefaultRegistry builds the registry from the built-in chain table.
func NewDefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultChainsYAML)
}

// LoadRegistry builds the registry from a YAML chain table on disk.
// An empty path selects the built-in table.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return NewDefaultRegistry()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain registry %s: %w", path, err)
	}
	return ParseRegistry(data)
}

// ParseRegistry builds the registry from a YAML document mapping chain symbols to properties.
func ParseRegistry(data []byte) (*Registry, error) {
	var table map[entity.ChainSymbol]entity.ChainProperties
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse chain registry: %w", err)
	}

	r := &Registry{chains: make(map[entity.ChainSymbol]entity.ChainProperties, len(table))}
	for symbol, props := range table {
		props.ChainSymbol = symbol
		r.chains[symbol] = props
	}
	return r, nil
}

// Lookup returns the properties of a chain and whether the chain is known.
func (r *Registry) Lookup(chainSymbol entity.ChainSymbol) (entity.ChainProperties, bool) {
	props, ok := r.chains[chainSymbol]
	return props, ok
}

// Symbols lists the known chain symbols in sorted order.
func (r *Registry) Symbols() []entity.ChainSymbol {
	symbols := make([]entity.ChainSymbol, 0, len(r.chains))
	for s := range r.chains {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
