package validation

import (
	"math"
	"strings"

	"examforge/internal/domain"
	"examforge/internal/dto"
)

// Validator provides request validation functionality
type Validator struct {
	maxExercises int
	seedMax      int64
}

// NewValidator creates a new validator instance
func NewValidator(maxExercises int, seedMax int64) *Validator {
	return &Validator{
		maxExercises: maxExercises,
		seedMax:      seedMax,
	}
}

// ValidateGenerateExamRequest validates one generation request. All field
// failures are collected so the caller sees every problem at once.
func (v *Validator) ValidateGenerateExamRequest(req dto.GenerateExamRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Count < 0 || req.Count > v.maxExercises {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 1, v.maxExercises))
	}

	switch req.SeedMode {
	case "", domain.SeedModeRandom:
	case domain.SeedModeFixed:
		if req.Seed < 0 || req.Seed > v.seedMax {
			errors = append(errors, domain.NewOutOfRangeError("seed", req.Seed, 0, v.seedMax))
		}
	default:
		errors = append(errors, domain.NewInvalidFormatError("seed_mode", req.SeedMode))
	}

	if req.Scored {
		if req.TotalPoints < 0 {
			errors = append(errors, domain.NewOutOfRangeError("total_points", req.TotalPoints, 0.25, 1000))
		} else if req.TotalPoints > 0 && !isQuarterAligned(req.TotalPoints) {
			// conservation and quarter quantization cannot both hold for a
			// total that is not itself a quarter multiple
			errors = append(errors, domain.NewInvalidFormatError("total_points", req.TotalPoints))
		}
	}

	if strings.TrimSpace(req.Topic) == "" && req.Topic != "" {
		errors = append(errors, domain.NewInvalidFormatError("topic", req.Topic))
	}
	if strings.TrimSpace(req.Difficulty) == "" && req.Difficulty != "" {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	return errors
}

func isQuarterAligned(v float64) bool {
	scaled := v * 4
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
