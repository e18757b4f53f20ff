package service

import (
	"testing"

	"examforge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFilterBank(t *testing.T) {
	bank := []domain.Question{
		{ID: "q1", Topic: "Electricity", Difficulty: "easy"},
		{ID: "q2", Topic: "Electricity", Difficulty: "hard"},
		{ID: "q3", Topic: "Mechanisms", Difficulty: "easy"},
		{ID: "q4", Topic: "Materials", Difficulty: "medium"},
	}

	tests := []struct {
		name       string
		topic      string
		difficulty string
		wantIDs    []string
	}{
		{"all wildcard passes everything", "all", "all", []string{"q1", "q2", "q3", "q4"}},
		{"empty selectors pass everything", "", "", []string{"q1", "q2", "q3", "q4"}},
		{"wildcard is case-insensitive", "All", "ALL", []string{"q1", "q2", "q3", "q4"}},
		{"topic is exact match", "Electricity", "all", []string{"q1", "q2"}},
		{"topic match is case-sensitive", "electricity", "all", nil},
		{"difficulty is case-insensitive", "all", "EASY", []string{"q1", "q3"}},
		{"topic and difficulty combine", "Electricity", "easy", []string{"q1"}},
		{"no match is a valid empty result", "Robotics", "all", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterBank(bank, tt.topic, tt.difficulty)
			ids := make([]string, 0, len(got))
			for _, q := range got {
				ids = append(ids, q.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}
