package providers

import "errors"

// Sentinel errors for collaborator failures. The pipeline distinguishes
// soft failures (absorbed, reduced evidence) from the one hard failure
// (narrative generation) that aborts the request.
var (
	// ErrArtifactUnavailable means the classifier's model artifacts could
	// not be located or deserialized. Soft.
	ErrArtifactUnavailable = errors.New("classifier model artifacts unavailable")

	// ErrPrediction covers any other internal classifier failure. Soft.
	ErrPrediction = errors.New("classifier prediction failed")

	// ErrNarrativeGeneration means the completion call failed or its output
	// did not conform to the narrative schema. Hard: no other component can
	// supply the narrative fields.
	ErrNarrativeGeneration = errors.New("narrative generation failed")

	// ErrChatUnavailable means the chat completion provider is not configured.
	ErrChatUnavailable = errors.New("chat service unavailable")
)
