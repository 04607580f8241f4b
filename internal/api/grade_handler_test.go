package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkondo/kioku-api/internal/domain"
)

func TestGrade(t *testing.T) {
	t.Parallel() // Enable parallel execution

	handler := NewGradeHandler(testLogger())

	testCases := []struct {
		name        string
		answer      string
		expected    string
		wantVerdict domain.Verdict
	}{
		{
			name:        "exact match is OK",
			answer:      "Hello world",
			expected:    "Hello world",
			wantVerdict: domain.VerdictOK,
		},
		{
			name:        "punctuation and case are ignored",
			answer:      "hello, world!",
			expected:    "Hello world",
			wantVerdict: domain.VerdictOK,
		},
		{
			name:        "close answer is MAYBE",
			answer:      "Xbcd",
			expected:    "abcd",
			wantVerdict: domain.VerdictMaybe,
		},
		{
			name:        "wrong answer is NG",
			answer:      "completely different",
			expected:    "Hello world",
			wantVerdict: domain.VerdictNG,
		},
		{
			name:        "empty answer is NG",
			answer:      "",
			expected:    "Hello world",
			wantVerdict: domain.VerdictNG,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution

			body, err := json.Marshal(GradeRequest{Answer: tc.answer, Expected: tc.expected})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/grade", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			handler.Grade(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var resp GradeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, string(tc.wantVerdict), resp.Verdict)
			assert.GreaterOrEqual(t, resp.Similarity, 0.0)
			assert.LessOrEqual(t, resp.Similarity, 1.0)
		})
	}
}

func TestGradeRequiresExpected(t *testing.T) {
	t.Parallel() // Enable parallel execution

	handler := NewGradeHandler(testLogger())

	body := []byte(`{"answer": "Hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/grade", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Grade(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
