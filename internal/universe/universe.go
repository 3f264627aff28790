package universe

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Built-in scan modes.
const (
	ModeQuick = "quick"
	ModeFull  = "full"
)

// ErrUnknownMode is returned for a mode with neither a built-in list nor an override.
var ErrUnknownMode = errors.New("unknown scan mode")

// Provider resolves a scan mode to its symbol list.
type Provider struct {
	lists map[string][]string
}

// New returns a provider with the built-in lists. Non-empty overrides replace
// the list of their mode or define a new mode.
func New(overrides map[string][]string) *Provider {
	lists := map[string][]string{
		ModeQuick: bist100,
		ModeFull:  append(append([]string{}, bist100...), bistExtra...),
	}
	for mode, symbols := range overrides {
		if cleaned := normalize(symbols); len(cleaned) > 0 {
			lists[strings.ToLower(mode)] = cleaned
		}
	}
	return &Provider{lists: lists}
}

// ListSymbols returns a fresh copy of the symbols for mode.
func (p *Provider) ListSymbols(mode string) ([]string, error) {
	symbols, ok := p.lists[strings.ToLower(strings.TrimSpace(mode))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return append([]string(nil), symbols...), nil
}

// Modes lists the known modes in name order.
func (p *Provider) Modes() []string {
	modes := make([]string, 0, len(p.lists))
	for m := range p.lists {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}

func normalize(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
