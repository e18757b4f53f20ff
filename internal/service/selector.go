package service

import (
	"math/rand"

	"examforge/internal/domain"
)

// maxPreferredTopics caps the distinct-topic preference of PickDiverse.
const maxPreferredTopics = 3

// Pick draws n questions from candidates without replacement, skipping any id
// in avoid. The draw is a seeded Fisher-Yates shuffle, so for a fixed rng
// state and candidate order the result is fully deterministic. Fails with an
// insufficient-pool error before any sampling when the eligible pool is
// smaller than n.
func Pick(candidates []domain.Question, rng *rand.Rand, n int, avoid map[string]struct{}) ([]domain.Question, error) {
	pool := make([]domain.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, used := avoid[q.ID]; used {
			continue
		}
		pool = append(pool, q)
	}

	if len(pool) < n {
		return nil, domain.NewInsufficientPoolError(len(pool), n, len(avoid))
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:n:n], nil
}

// PickDiverse draws like Pick but prefers topic variety: over the shuffled
// order, a candidate whose topic is already represented is skipped while
// fewer than min(3, n) distinct topics have been used. Skipped candidates
// fill the remaining slots in a second pass, so the preference can never
// cause a spurious insufficient-pool failure.
func PickDiverse(candidates []domain.Question, rng *rand.Rand, n int, avoid map[string]struct{}) ([]domain.Question, error) {
	pool := make([]domain.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, used := avoid[q.ID]; used {
			continue
		}
		pool = append(pool, q)
	}

	if len(pool) < n {
		return nil, domain.NewInsufficientPoolError(len(pool), n, len(avoid))
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	wantTopics := maxPreferredTopics
	if n < wantTopics {
		wantTopics = n
	}

	chosen := make([]domain.Question, 0, n)
	topics := make(map[string]struct{})
	var skipped []domain.Question

	for _, q := range pool {
		if len(chosen) == n {
			break
		}
		if _, seen := topics[q.Topic]; seen && len(topics) < wantTopics {
			skipped = append(skipped, q)
			continue
		}
		chosen = append(chosen, q)
		topics[q.Topic] = struct{}{}
	}

	// fallback pass: fill remaining slots ignoring the diversity preference
	for _, q := range skipped {
		if len(chosen) == n {
			break
		}
		chosen = append(chosen, q)
	}

	return chosen, nil
}
