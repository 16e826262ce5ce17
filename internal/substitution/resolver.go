package substitution

import (
	"context"
	"strings"

	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const MaxAlternatives = 10

type exerciseCatalog interface {
	Lookup(name string) (catalog.Entry, bool)
	All() []catalog.Entry
}

type Resolver struct {
	catalog exerciseCatalog
	limit   int
}

func NewResolver(c exerciseCatalog) *Resolver {
	return &Resolver{
		catalog: c,
		limit:   MaxAlternatives,
	}
}

type tier func(source, candidate catalog.Entry) bool

// tiers after the declared alternatives, from the closest match to the broadest
var neighbourhoodTiers = []tier{
	func(s, c catalog.Entry) bool {
		return sameGroupAndCategory(s, c) && same(s.MuscleRegion, c.MuscleRegion)
	},
	func(s, c catalog.Entry) bool {
		return sameGroupAndCategory(s, c) && same(s.MovementPattern, c.MovementPattern)
	},
	sameGroupAndCategory,
}

// Alternatives ranks substitutes for the named exercise: its declared alternatives
// first, then catalog neighbours sharing muscle group and category. The source
// exercise is never included, names are unique, and an unknown source yields nothing.
func (r *Resolver) Alternatives(ctx context.Context, name string) []catalog.Entry {
	_, span := tracing.GlobalTracer.Start(ctx, "substitution.alternatives")
	defer span.End()
	span.SetAttributes(attribute.String("exercise", name))

	source, ok := r.catalog.Lookup(name)
	if !ok {
		span.SetAttributes(attribute.Bool("source.found", false))
		return []catalog.Entry{}
	}

	collected := make([]catalog.Entry, 0, r.limit)
	seen := map[string]bool{
		catalog.Key(source.Name): true,
	}
	add := func(e catalog.Entry) bool {
		key := catalog.Key(e.Name)
		if seen[key] {
			return true
		}
		seen[key] = true
		collected = append(collected, e)
		return len(collected) < r.limit
	}

	for _, altName := range source.Alternatives {
		alt, ok := r.catalog.Lookup(altName)
		if !ok {
			continue
		}
		if !add(alt) {
			return collected
		}
	}

	all := r.catalog.All()
	for _, matches := range neighbourhoodTiers {
		for _, candidate := range all {
			if !matches(source, candidate) {
				continue
			}
			if !add(candidate) {
				return collected
			}
		}
	}

	span.SetAttributes(attribute.Int("alternatives", len(collected)))
	return collected
}

func sameGroupAndCategory(s, c catalog.Entry) bool {
	return same(s.PrimaryMuscleGroup, c.PrimaryMuscleGroup) && same(s.Category, c.Category)
}

func same(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
