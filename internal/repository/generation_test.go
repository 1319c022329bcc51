package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "no fence",
			response: `{"verdict":"BUY"}`,
			want:     `{"verdict":"BUY"}`,
		},
		{
			name:     "json fence",
			response: "```json\n{\"verdict\":\"BUY\"}\n```",
			want:     `{"verdict":"BUY"}`,
		},
		{
			name:     "bare fence",
			response: "```\n{\"verdict\":\"BUY\"}\n```",
			want:     `{"verdict":"BUY"}`,
		},
		{
			name:     "fence with surrounding prose",
			response: "Here is the analysis:\n```json\n{\"verdict\":\"BUY\"}\n```\nLet me know if you need more.",
			want:     `{"verdict":"BUY"}`,
		},
		{
			name:     "dangling open fence",
			response: "```json\n{\"verdict\":\"BUY\"}",
			want:     `{"verdict":"BUY"}`,
		},
		{
			name:     "empty response",
			response: "",
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.response))
		})
	}
}

func TestDecodeJSONOutput(t *testing.T) {
	t.Run("fenced payload", func(t *testing.T) {
		var dest struct {
			Verdict string `json:"verdict"`
		}
		err := decodeJSONOutput("```json\n{\"verdict\":\"WATCH\"}\n```", &dest)
		require.NoError(t, err)
		assert.Equal(t, "WATCH", dest.Verdict)
	})

	t.Run("prose response", func(t *testing.T) {
		var dest struct{}
		err := decodeJSONOutput("I am unable to analyze this company.", &dest)

		var malformed *MalformedOutputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "I am unable to analyze this company.", malformed.Raw)
		assert.Error(t, errors.Unwrap(malformed))
	})

	t.Run("truncated json", func(t *testing.T) {
		var dest struct{}
		err := decodeJSONOutput(`{"verdict":"BU`, &dest)

		var malformed *MalformedOutputError
		require.ErrorAs(t, err, &malformed)
	})
}
