package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"invest-research/internal/dto"
)

// ErrTruncatedOutput is returned when the model stopped at the token cap.
// A truncated JSON payload is worse than an explicit failure, so this always
// surfaces as an error.
var ErrTruncatedOutput = errors.New("generation response truncated at max tokens")

// MalformedOutputError is returned when the model response cannot be parsed
// as JSON. Raw carries the full text for diagnostics; a partial or
// best-guess object is never returned.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("generation output is not valid JSON: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// GenerationRepository is the structured-generation client. Complete returns
// the raw text of the first text content block; CompleteJSON additionally
// unwraps an optional code fence and parses the result into dest, returning
// the raw text alongside for audit storage.
type GenerationRepository interface {
	Complete(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions) (string, error)
	CompleteJSON(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions, dest interface{}) (string, error)
}

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	openFenceRe   = regexp.MustCompile("^```(?:json)?\\s*")
)

// requestLimiter spaces requests to an upstream API. A non-positive budget
// disables the limiter.
func requestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// StripCodeFence removes a ```json ... ``` wrapper, or a dangling opening
// fence with no matching close, from a model response.
func StripCodeFence(response string) string {
	if m := fencedBlockRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	if loc := openFenceRe.FindStringIndex(response); loc != nil {
		return strings.TrimSpace(response[loc[1]:])
	}
	return response
}

// decodeJSONOutput parses a (possibly fenced) model response into dest.
func decodeJSONOutput(response string, dest interface{}) error {
	jsonString := StripCodeFence(response)
	if err := json.Unmarshal([]byte(jsonString), dest); err != nil {
		return &MalformedOutputError{Raw: response, Err: err}
	}
	return nil
}
