package service

import (
	"math"
	"math/rand"

	"examforge/internal/domain"
)

// PointQuantum is the increment every emitted point value is rounded to.
const PointQuantum = 0.25

// RoundQuarter rounds v to the nearest quarter point.
func RoundQuarter(v float64) float64 {
	return math.Round(v/PointQuantum) * PointQuantum
}

// AllocatePoints distributes total across the questions and their parts.
//
// The total is split evenly, with one small symmetric perturbation between
// the first two questions (magnitude at most min(0.5, base/4), drawn from
// rng) so generated exams do not all look uniform. Every value is rounded to
// the nearest quarter point; rounding drift is pushed into the last question,
// which takes the residual against the target total and is re-rounded. With
// a quarter-aligned total the variant therefore sums to it exactly.
//
// Within a question, the assigned points are split evenly across its parts;
// all parts but the last are quarter-rounded and the last takes the exact
// remainder, so part points always sum to the question's points. A question
// without declared parts is treated as a single implicit part worth its full
// value.
//
// The input is not mutated; allocation returns fresh copies.
func AllocatePoints(questions []domain.Question, rng *rand.Rand, total float64) []domain.Question {
	n := len(questions)
	if n == 0 {
		return nil
	}

	base := total / float64(n)
	shares := make([]float64, n)
	for i := range shares {
		shares[i] = base
	}

	if n >= 2 {
		maxDelta := math.Min(0.5, base*0.25)
		delta := (rng.Float64()*2 - 1) * maxDelta
		shares[0] += delta
		shares[1] -= delta
	}

	for i := range shares {
		shares[i] = RoundQuarter(shares[i])
	}

	var allocated float64
	for _, s := range shares[:n-1] {
		allocated += s
	}
	shares[n-1] = RoundQuarter(total - allocated)

	out := make([]domain.Question, n)
	for i, q := range questions {
		out[i] = q
		out[i].Points = shares[i]
		out[i].Parts = allocateParts(q.Parts, shares[i])
	}
	return out
}

func allocateParts(parts []domain.Part, points float64) []domain.Part {
	if len(parts) == 0 {
		return nil
	}

	out := make([]domain.Part, len(parts))
	per := points / float64(len(parts))

	var allocated float64
	for i, p := range parts[:len(parts)-1] {
		out[i] = p
		out[i].Points = RoundQuarter(per)
		allocated += out[i].Points
	}

	last := len(parts) - 1
	out[last] = parts[last]
	out[last].Points = points - allocated
	return out
}
