package content

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a request rejected before any model call.
var ErrInvalidInput = errors.New("invalid input")

var (
	errSummaryInput     = fmt.Errorf("%w: name and target role are required", ErrInvalidInput)
	errDescriptionInput = fmt.Errorf("%w: description is required", ErrInvalidInput)
	errSkillsInput      = fmt.Errorf("%w: target role is required", ErrInvalidInput)
	errAnalysisInput    = fmt.Errorf("%w: resume data is required", ErrInvalidInput)
)
