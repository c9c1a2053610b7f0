package store

import (
	"context"

	"cryptomobile/internal/models"
	"cryptomobile/internal/suite"
)

// Catalogue converts the engine registry into catalogue rows.
func Catalogue() []models.Algorithm {
	var out []models.Algorithm
	for _, a := range suite.Describe() {
		modes := []string{"KAT", "MMT"}
		if a.Kind == suite.KindCipher || a.Kind == suite.KindPermutation {
			modes = append(modes, "MCT")
		}
		out = append(out, models.Algorithm{
			Name:      a.Name,
			Kind:      string(a.Kind),
			Primitive: a.Primitive,
			Reference: a.Reference,
			UsesFresh: a.UsesFresh,
			TestModes: models.MustJSONB(modes),
		})
	}
	return out
}

// SeedCatalogue upserts the registry into s.
func SeedCatalogue(ctx context.Context, s Store) error {
	return s.SyncAlgorithms(ctx, Catalogue())
}
