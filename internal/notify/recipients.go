package notify

import (
	"net/mail"
	"strings"
)

// Resolution is the effective send list for one notification.
type Resolution struct {
	Recipients   []string
	FallbackUsed bool
}

// Resolver turns zero or more preferred addresses into a clean recipient
// list, substituting the configured fallback distribution list when no
// preferred address survives filtering. Malformed and duplicate addresses
// are discarded here so the pipeline never has to second-guess the list.
type Resolver struct {
	fallback []string
}

// NewResolver constructs a Resolver with the fallback distribution list.
func NewResolver(fallback []string) *Resolver {
	return &Resolver{fallback: fallback}
}

// Resolve filters, normalizes, and deduplicates the preferred addresses.
// An empty result means the fallback list was unusable too; callers must
// treat that as a hard failure rather than sending to nobody.
func (r *Resolver) Resolve(preferred []string) Resolution {
	recipients := clean(preferred)
	if len(recipients) > 0 {
		return Resolution{Recipients: recipients}
	}
	return Resolution{Recipients: clean(r.fallback), FallbackUsed: true}
}

func clean(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	var out []string
	for _, raw := range addresses {
		addr := strings.TrimSpace(strings.ToLower(raw))
		if addr == "" || seen[addr] {
			continue
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}
