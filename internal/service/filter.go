package service

import (
	"strings"

	"examforge/internal/domain"
)

// FilterBank narrows the bank to candidates matching the topic and difficulty
// selectors. The wildcard "all" (or an empty selector) passes everything.
// Topic matching is exact; difficulty matching is case-insensitive. An empty
// result is valid and surfaces downstream as an insufficient pool.
func FilterBank(bank []domain.Question, topic, difficulty string) []domain.Question {
	matchTopic := topic != "" && !strings.EqualFold(topic, domain.FilterAll)
	matchDifficulty := difficulty != "" && !strings.EqualFold(difficulty, domain.FilterAll)
	difficulty = strings.ToLower(difficulty)

	out := make([]domain.Question, 0, len(bank))
	for _, q := range bank {
		if matchTopic && q.Topic != topic {
			continue
		}
		if matchDifficulty && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}
