package interval

import "errors"

// ErrInvalidRange indicates a begin date that falls after its end date,
// or a range with a missing bound.
var ErrInvalidRange = errors.New("begin date must not be after end date")

// ErrUnsupportedGranularity indicates a granularity outside the supported kinds.
var ErrUnsupportedGranularity = errors.New("unsupported granularity")

// ErrInvalidFieldType indicates a field assigned a value of the wrong kind.
var ErrInvalidFieldType = errors.New("invalid field type")

// ErrInvalidRepeatCount indicates a repeat count below one.
var ErrInvalidRepeatCount = errors.New("repeat count must be positive")

// ErrTooManyIntervals indicates a generation that would exceed the configured limit.
var ErrTooManyIntervals = errors.New("too many intervals")
