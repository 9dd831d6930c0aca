package factcheck

import (
	"errors"
	"fmt"
)

// Label is the verdict category returned to clients.
type Label string

const (
	LabelTrue         Label = "True"
	LabelFalse        Label = "False"
	LabelMisleading   Label = "Misleading"
	LabelUnverifiable Label = "Unverifiable"
	LabelError        Label = "Error"
)

// Source is a supporting search hit attached to a verdict.
type Source struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet *string `json:"snippet"`
}

// Response is the fact-check verdict.
type Response struct {
	Label       Label    `json:"label"`
	Explanation string   `json:"explanation"`
	Sources     []Source `json:"sources"`
	Confidence  float64  `json:"confidence"`
}

const (
	explainEmptyText      = "No text content to fact-check."
	explainNoClaim        = "This tweet does not contain a verifiable factual claim."
	explainNoSources      = "No reliable sources found to verify this claim."
	explainSynthesisError = "An error occurred while analyzing this claim."
)

func unverifiable(explanation string) Response {
	return Response{
		Label:       LabelUnverifiable,
		Explanation: explanation,
		Sources:     []Source{},
		Confidence:  0.0,
	}
}

// ErrNoClaim reports that the model found nothing verifiable in the text.
var ErrNoClaim = errors.New("factcheck: no verifiable claim")

// Stage names a pipeline step for error reporting.
type Stage string

const (
	StageExtract   Stage = "claim extraction"
	StageSearch    Stage = "source search"
	StageSynthesis Stage = "verdict synthesis"
)

// StageError wraps a provider failure with the pipeline step it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
