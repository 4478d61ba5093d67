// Package resolver translates human-memorable staff aliases into the
// backend's canonical provider identifiers.
package resolver

// Resolver holds the static alias table supplied at process start. An alias
// mapped to an empty identifier is a configuration gap, not an error: the
// booking stays queued until the mapping is filled in.
type Resolver struct {
	aliases map[string]string
}

func New(aliases map[string]string) *Resolver {
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Resolver{aliases: aliases}
}

// Resolve maps rawID to a canonical identifier. It returns ok=false when
// rawID is empty or names a known alias whose identifier has not been
// configured yet. Any other value is assumed to already be canonical and is
// passed through unchanged.
func (r *Resolver) Resolve(rawID string) (string, bool) {
	if rawID == "" {
		return "", false
	}

	if resolved, known := r.aliases[rawID]; known {
		if resolved == "" {
			return "", false
		}
		return resolved, true
	}

	return rawID, true
}

// IsAlias reports whether rawID names a configured alias, mapped or not.
func (r *Resolver) IsAlias(rawID string) bool {
	_, known := r.aliases[rawID]
	return known
}
