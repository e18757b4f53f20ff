package dto

import "examforge/internal/domain"

// GenerateExamRequest is the body of POST /api/exams.
// @Description Parameters for one exam-generation request
type GenerateExamRequest struct {
	Title            string  `json:"title"`
	Topic            string  `json:"topic"`             // exact topic or "all"
	Difficulty       string  `json:"difficulty"`        // exact difficulty or "all"
	Count            int     `json:"count"`             // questions per variant
	TwoVariants      bool    `json:"two_variants"`      // also draw variant B
	AllowRepeat      bool    `json:"allow_repeat"`      // variants may share questions
	IncludeSolutions bool    `json:"include_solutions"` // print solutions in the document
	Scored           bool    `json:"scored"`            // distribute total_points
	DiverseTopics    bool    `json:"diverse_topics"`    // prefer topic variety
	TotalPoints      float64 `json:"total_points"`      // scored mode only
	SeedMode         string  `json:"seed_mode"`         // "fixed" or "random"
	Seed             int64   `json:"seed"`              // used when seed_mode is "fixed"
}

// ToParams converts the request into domain generation parameters, applying
// the given defaults for unset optional fields.
func (r GenerateExamRequest) ToParams(defaultCount int, defaultTotalPoints float64) domain.GenerationParams {
	params := domain.GenerationParams{
		Title:            r.Title,
		Topic:            r.Topic,
		Difficulty:       r.Difficulty,
		Count:            r.Count,
		TwoVariants:      r.TwoVariants,
		AllowRepeat:      r.AllowRepeat,
		IncludeSolutions: r.IncludeSolutions,
		Scored:           r.Scored,
		DiverseTopics:    r.DiverseTopics,
		TotalPoints:      r.TotalPoints,
		SeedMode:         r.SeedMode,
		Seed:             r.Seed,
	}
	if params.Count == 0 {
		params.Count = defaultCount
	}
	if params.Scored && params.TotalPoints == 0 {
		params.TotalPoints = defaultTotalPoints
	}
	if params.SeedMode == "" {
		params.SeedMode = domain.SeedModeRandom
	}
	return params
}

// PartResponse is one sub-part in the JSON preview.
type PartResponse struct {
	Statement string  `json:"statement"`
	Points    float64 `json:"points,omitempty"`
}

// QuestionResponse is one question in the JSON preview.
type QuestionResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title,omitempty"`
	Statement  string         `json:"statement"`
	Topic      string         `json:"topic"`
	Difficulty string         `json:"difficulty,omitempty"`
	Answer     string         `json:"answer,omitempty"`
	Points     float64        `json:"points,omitempty"`
	Parts      []PartResponse `json:"parts,omitempty"`
}

// VariantResponse is one variant in the JSON preview.
type VariantResponse struct {
	Label     string             `json:"label"`
	Questions []QuestionResponse `json:"questions"`
}

// GenerateExamResponse is the JSON preview of a generated exam.
type GenerateExamResponse struct {
	DocumentID  string            `json:"document_id"`
	Title       string            `json:"title"`
	Seed        int64             `json:"seed"`
	Scored      bool              `json:"scored"`
	TotalPoints float64           `json:"total_points,omitempty"`
	Variants    []VariantResponse `json:"variants"`
}

// NewGenerateExamResponse maps a domain exam to its preview representation.
// Answers are included only when solutions were requested.
func NewGenerateExamResponse(documentID string, exam *domain.Exam, includeSolutions bool) GenerateExamResponse {
	resp := GenerateExamResponse{
		DocumentID:  documentID,
		Title:       exam.Title,
		Seed:        exam.Seed,
		Scored:      exam.Scored,
		TotalPoints: exam.TotalPoints,
		Variants:    make([]VariantResponse, len(exam.Variants)),
	}
	for i, v := range exam.Variants {
		vr := VariantResponse{
			Label:     v.Label,
			Questions: make([]QuestionResponse, len(v.Questions)),
		}
		for j, q := range v.Questions {
			qr := QuestionResponse{
				ID:         q.ID,
				Title:      q.Title,
				Statement:  q.Statement,
				Topic:      q.Topic,
				Difficulty: q.Difficulty,
				Points:     q.Points,
			}
			if includeSolutions {
				qr.Answer = q.Answer
			}
			for _, p := range q.Parts {
				qr.Parts = append(qr.Parts, PartResponse{Statement: p.Statement, Points: p.Points})
			}
			vr.Questions[j] = qr
		}
		resp.Variants[i] = vr
	}
	return resp
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
