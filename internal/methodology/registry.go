package methodology

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrNotFound = errors.New("methodology not found")

// Weights must sum to exactly 1.0 up to float accumulation error.
const weightTolerance = 1e-6

// Registry is the process-wide catalogue of scoring frameworks. It is
// validated once at construction and read-only afterwards, so both the
// live and transcript evaluation paths score against identical definitions.
type Registry struct {
	order []string
	defs  map[string]Definition
}

func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}

	for _, def := range defs {
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("methodology %q: %w", def.Name, err)
		}

		key := strings.ToLower(def.Name)
		if _, exists := r.defs[key]; exists {
			return nil, fmt.Errorf("methodology %q: duplicate registration", def.Name)
		}

		r.defs[key] = def
		r.order = append(r.order, key)
	}

	return r, nil
}

// List returns definitions in registration order.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.defs[key])
	}
	return out
}

// Get looks a definition up by name, case-insensitively.
func (r *Registry) Get(name string) (Definition, error) {
	def, ok := r.defs[strings.ToLower(name)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return def, nil
}

func validate(def Definition) error {
	if def.Name == "" {
		return errors.New("name is required")
	}
	if len(def.Dimensions) == 0 {
		return errors.New("at least one dimension is required")
	}

	seen := make(map[string]bool, len(def.Dimensions))
	var weightSum float64

	for _, dim := range def.Dimensions {
		if dim.Key == "" || dim.Name == "" {
			return fmt.Errorf("dimension %q: key and name are required", dim.Key)
		}
		if seen[dim.Key] {
			return fmt.Errorf("dimension %q: duplicate key", dim.Key)
		}
		seen[dim.Key] = true

		if dim.MaxScore <= 0 {
			return fmt.Errorf("dimension %q: max score must be positive", dim.Key)
		}
		if dim.Weight <= 0 || dim.Weight > 1 {
			return fmt.Errorf("dimension %q: weight must be in (0, 1]", dim.Key)
		}
		if dim.Scope != ScopeTechnique && dim.Scope != ScopeOutcome {
			return fmt.Errorf("dimension %q: unknown scope %q", dim.Key, dim.Scope)
		}
		if dim.Rubric == "" {
			return fmt.Errorf("dimension %q: rubric is required", dim.Key)
		}

		weightSum += dim.Weight
	}

	if math.Abs(weightSum-1.0) > weightTolerance {
		return fmt.Errorf("dimension weights sum to %.8f, want 1.0", weightSum)
	}

	return nil
}
