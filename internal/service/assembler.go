package service

import (
	"math/rand"

	"examforge/internal/domain"
)

// Assemble draws one or two exam variants from candidates.
//
// Variant A is always drawn first and variant B second, from the same seeded
// stream; this ordering is part of the determinism contract: for a fixed seed
// variant A is always identical, and variant B depends on A's consumption of
// the stream. With two variants the pool is prechecked against the total need
// (n when repeats between variants are allowed, 2n otherwise) before any
// sampling happens, so a failed request never partially succeeds.
func Assemble(candidates []domain.Question, seed int64, n int, twoVariants, allowRepeat, diverse bool) ([]domain.Variant, error) {
	return AssembleRand(candidates, rand.New(rand.NewSource(seed)), n, twoVariants, allowRepeat, diverse)
}

// AssembleRand is Assemble with an explicit generator, for callers that keep
// consuming the same stream afterwards (point allocation does).
func AssembleRand(candidates []domain.Question, rng *rand.Rand, n int, twoVariants, allowRepeat, diverse bool) ([]domain.Variant, error) {
	if n <= 0 {
		return nil, domain.NewInvalidConfigurationError("exercise count must be greater than zero")
	}
	if len(candidates) == 0 {
		return nil, domain.NewInvalidConfigurationError("no questions are available with the current filters")
	}

	pick := Pick
	if diverse {
		pick = PickDiverse
	}

	if !twoVariants {
		a, err := pick(candidates, rng, n, nil)
		if err != nil {
			return nil, err
		}
		return []domain.Variant{{Label: domain.VariantA, Questions: a}}, nil
	}

	needed := n
	if !allowRepeat {
		needed = 2 * n
	}
	if len(candidates) < needed {
		return nil, domain.NewInsufficientPoolError(len(candidates), needed, 0)
	}

	a, err := pick(candidates, rng, n, nil)
	if err != nil {
		return nil, err
	}

	avoid := make(map[string]struct{}, n)
	if !allowRepeat {
		for _, q := range a {
			avoid[q.ID] = struct{}{}
		}
	}

	b, err := pick(candidates, rng, n, avoid)
	if err != nil {
		return nil, err
	}

	return []domain.Variant{
		{Label: domain.VariantA, Questions: a},
		{Label: domain.VariantB, Questions: b},
	}, nil
}
