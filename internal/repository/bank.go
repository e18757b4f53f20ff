package repository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"examforge/internal/domain"

	"gopkg.in/yaml.v3"
)

// rawQuestion mirrors one bank record before validation. Two record shapes
// are accepted: plain records (statement/answer) and scored records
// (title or statement, parts, solution). A record is treated as scored when
// it declares parts or a solution.
type rawQuestion struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Statement  string   `yaml:"statement"`
	Topic      string   `yaml:"topic"`
	Difficulty string   `yaml:"difficulty"`
	Answer     string   `yaml:"answer"`
	Solution   string   `yaml:"solution"`
	Parts      []string `yaml:"parts"`
}

// rawBank accepts either a top-level list of records or a mapping with a
// `questions` list.
type rawBank struct {
	Questions []rawQuestion `yaml:"questions"`
}

// FileBankRepository loads and validates a YAML question bank from disk.
type FileBankRepository struct {
	path string
}

func NewFileBankRepository(path string) *FileBankRepository {
	return &FileBankRepository{path: path}
}

// GetBank reads the bank file and returns the fully validated question set.
// Any malformed record fails the whole load; a partially validated bank is
// never returned.
func (r *FileBankRepository) GetBank(ctx context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, domain.NewLoadError(fmt.Sprintf("cannot read bank file %s", r.path), err)
	}
	return ParseBank(data)
}

// BankBytes returns the raw bank source for download.
func (r *FileBankRepository) BankBytes(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, domain.NewLoadError(fmt.Sprintf("cannot read bank file %s", r.path), err)
	}
	return data, nil
}

// Path returns the bank file location, used for cache keying.
func (r *FileBankRepository) Path() string {
	return r.path
}

// ParseBank decodes and validates bank source bytes into domain questions.
func ParseBank(data []byte) ([]domain.Question, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Question, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		q, err := validateRecord(i+1, rec)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[q.ID]; dup {
			return nil, domain.NewLoadError(fmt.Sprintf("duplicate question id: %s", q.ID), nil)
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, domain.NewLoadError("question bank is empty", nil)
	}
	return out, nil
}

func decodeRecords(data []byte) ([]rawQuestion, error) {
	var list []rawQuestion
	if err := yaml.Unmarshal(data, &list); err == nil && list != nil {
		return list, nil
	}

	var wrapped rawBank
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, domain.NewLoadError("bank source must be a list of questions or a mapping with a 'questions' list", err)
	}
	if wrapped.Questions == nil {
		return nil, domain.NewLoadError("bank source must be a list of questions or a mapping with a 'questions' list", nil)
	}
	return wrapped.Questions, nil
}

func validateRecord(index int, rec rawQuestion) (domain.Question, error) {
	missing := func(field string) error {
		return domain.NewLoadError(fmt.Sprintf("question #%d is missing field '%s'", index, field), nil)
	}

	q := domain.Question{
		ID:         strings.TrimSpace(rec.ID),
		Title:      strings.TrimSpace(rec.Title),
		Statement:  strings.TrimSpace(rec.Statement),
		Topic:      strings.TrimSpace(rec.Topic),
		Difficulty: strings.ToLower(strings.TrimSpace(rec.Difficulty)),
	}

	if q.ID == "" {
		return domain.Question{}, domain.NewLoadError(fmt.Sprintf("question #%d has an empty id", index), nil)
	}
	if q.Topic == "" {
		return domain.Question{}, missing("topic")
	}

	scored := len(rec.Parts) > 0 || strings.TrimSpace(rec.Solution) != ""
	if scored {
		if q.Title == "" && q.Statement == "" {
			return domain.Question{}, missing("title")
		}
		if strings.TrimSpace(rec.Solution) == "" {
			return domain.Question{}, missing("solution")
		}
		q.Answer = strings.TrimSpace(rec.Solution)
		for _, p := range rec.Parts {
			part := strings.TrimSpace(p)
			if part == "" {
				return domain.Question{}, domain.NewLoadError(fmt.Sprintf("question #%d has an empty part", index), nil)
			}
			q.Parts = append(q.Parts, domain.Part{Statement: part})
		}
		return q, nil
	}

	if q.Statement == "" {
		return domain.Question{}, missing("statement")
	}
	if q.Difficulty == "" {
		return domain.Question{}, missing("difficulty")
	}
	if strings.TrimSpace(rec.Answer) == "" {
		return domain.Question{}, missing("answer")
	}
	q.Answer = strings.TrimSpace(rec.Answer)
	return q, nil
}
