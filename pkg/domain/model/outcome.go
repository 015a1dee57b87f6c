package model

import "fmt"

// OutcomeKind tags the terminal result of a restore run. Fatal aborts
// are not an Outcome; they propagate as errors and end the process
// with exit code 1.
type OutcomeKind string

const (
	// OutcomeApplied means the target directory was replaced with the
	// validated artifact contents.
	OutcomeApplied OutcomeKind = "applied"

	// OutcomeSkipped means there was nothing safe to do and the target
	// directory was left untouched. The process still exits 0.
	OutcomeSkipped OutcomeKind = "skipped"
)

// SkipCause distinguishes the soft no-op conditions.
type SkipCause string

const (
	// SkipNoArtifact: no publication artifact exists, or its metadata
	// carries no id.
	SkipNoArtifact SkipCause = "no_artifact"

	// SkipNoDownload: the per-artifact lookup returned no usable
	// download location.
	SkipNoDownload SkipCause = "no_download"

	// SkipMissingFile: the extracted archive lacks a required file.
	SkipMissingFile SkipCause = "missing_file"
)

// SkipReason explains a soft no-op to the operator.
type SkipReason struct {
	Cause   SkipCause
	Missing string // Required file path, set when Cause == SkipMissingFile
	Detail  string // Operator-facing explanation
}

// Outcome is the result of one restore run.
type Outcome struct {
	Kind       OutcomeKind
	ArtifactID int64      // Set when Kind == OutcomeApplied
	Skip       SkipReason // Set when Kind == OutcomeSkipped
}

// Applied builds the success outcome for an applied artifact.
func Applied(artifactID int64) *Outcome {
	return &Outcome{Kind: OutcomeApplied, ArtifactID: artifactID}
}

// Skipped builds a soft no-op outcome.
func Skipped(cause SkipCause, detail string) *Outcome {
	return &Outcome{Kind: OutcomeSkipped, Skip: SkipReason{Cause: cause, Detail: detail}}
}

// SkippedMissingFile builds the soft no-op outcome for an incomplete
// artifact, naming the missing file and what declining protects.
func SkippedMissingFile(req RequiredFile) *Outcome {
	return &Outcome{
		Kind: OutcomeSkipped,
		Skip: SkipReason{
			Cause:   SkipMissingFile,
			Missing: req.Path,
			Detail:  fmt.Sprintf("%s missing, skip to keep %s", req.Path, req.Protects),
		},
	}
}
