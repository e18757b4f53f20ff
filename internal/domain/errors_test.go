package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientPoolError_CarriesCounts(t *testing.T) {
	err := NewInsufficientPoolError(6, 10, 4)

	assert.Equal(t, CodeInsufficientPool, err.Code)
	assert.Equal(t, 6, err.Context["available"])
	assert.Equal(t, 10, err.Context["needed"])
	assert.Equal(t, 4, err.Context["avoided"])
	assert.Contains(t, err.Error(), "6 available")
	assert.Contains(t, err.Error(), "10 needed")
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := NewLoadError("cannot read bank", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestDomainError_MarshalJSON(t *testing.T) {
	data, jsonErr := json.Marshal(NewInsufficientPoolError(2, 5, 1))
	require.NoError(t, jsonErr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, string(CodeInsufficientPool), decoded["code"])
	assert.NotContains(t, string(data), "Cause")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("topic"),
		NewOutOfRangeError("count", 99, 1, 50),
	}
	msg := errs.Error()
	assert.Contains(t, msg, "topic")
	assert.Contains(t, msg, "count")
}

func TestQuestionHeading(t *testing.T) {
	assert.Equal(t, "T", Question{Title: "T", Statement: "S"}.Heading())
	assert.Equal(t, "S", Question{Statement: "S"}.Heading())
}

func TestVariantIDs(t *testing.T) {
	v := Variant{Questions: []Question{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, []string{"a", "b"}, v.IDs())
}
