package domain

// Part is one sub-statement of a question. Points is assigned during
// allocation and is zero for questions loaded from the bank.
type Part struct {
	Statement string  `json:"statement"`
	Points    float64 `json:"points,omitempty"`
}

// Question is one record of the bank. Instances are immutable once loaded;
// point allocation works on copies and never writes back to the bank.
type Question struct {
	ID         string  `json:"id"`
	Title      string  `json:"title,omitempty"`
	Statement  string  `json:"statement"`
	Topic      string  `json:"topic"`
	Difficulty string  `json:"difficulty,omitempty"`
	Answer     string  `json:"answer"`
	Parts      []Part  `json:"parts,omitempty"`
	Points     float64 `json:"points,omitempty"`
}

// Heading returns the display title of the question, falling back to the
// statement when no explicit title was given.
func (q Question) Heading() string {
	if q.Title != "" {
		return q.Title
	}
	return q.Statement
}

// Variant labels. A is always present; B only when two variants are requested.
const (
	VariantA = "A"
	VariantB = "B"
)

// Variant is one independently drawn exam instance.
type Variant struct {
	Label     string     `json:"label"`
	Questions []Question `json:"questions"`
}

// IDs returns the question ids of the variant in draw order.
func (v Variant) IDs() []string {
	ids := make([]string, len(v.Questions))
	for i, q := range v.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Exam is a transient, per-request structure: built once, rendered once,
// never persisted.
type Exam struct {
	Title       string    `json:"title"`
	Seed        int64     `json:"seed"`
	Scored      bool      `json:"scored"`
	TotalPoints float64   `json:"total_points,omitempty"`
	Variants    []Variant `json:"variants"`
}

// Seed modes for a generation request.
const (
	SeedModeFixed  = "fixed"
	SeedModeRandom = "random"
)

// Wildcard accepted by the topic and difficulty filters.
const FilterAll = "all"

// GenerationParams holds one exam-generation request after validation.
type GenerationParams struct {
	Title            string
	Topic            string
	Difficulty       string
	Count            int
	TwoVariants      bool
	AllowRepeat      bool
	IncludeSolutions bool
	Scored           bool
	DiverseTopics    bool
	TotalPoints      float64
	SeedMode         string
	Seed             int64
}

// BankFacets lists the distinct topics and difficulties present in the bank,
// sorted, for selection UIs.
type BankFacets struct {
	Topics       []string `json:"topics"`
	Difficulties []string `json:"difficulties"`
}
