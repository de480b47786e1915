package model

import "errors"

// Error kinds shared by every stage of the pipeline. Stages wrap them with
// context; callers match with errors.Is.
var (
	// ErrMissingConfiguration is logged and tolerated.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrMissingArtifact means no project-resolved event was observed.
	ErrMissingArtifact = errors.New("missing project artifact")

	// ErrInvalidArgument is a nil tree or document passed between stages.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutputWrite wraps any I/O failure while writing a document.
	ErrOutputWrite = errors.New("output write failure")
)
