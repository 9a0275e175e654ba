// pkg/airport/errors.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import "errors"

// Load errors returned by graph, config, model, and instance parsing.
// All of these are fatal: cmd/airportsim logs them and exits nonzero.
var (
	ErrUnknownVertex       = errors.New("airport: unknown vertex name")
	ErrUnknownEdge         = errors.New("airport: unknown edge name")
	ErrDuplicateVertex     = errors.New("airport: duplicate vertex name")
	ErrDuplicateEdge       = errors.New("airport: duplicate edge name")
	ErrUnknownModel        = errors.New("airport: unknown aircraft model name")
	ErrProbLengthMismatch  = errors.New("airport: parallel time/probability sequences have different lengths")
	ErrEmptyProb           = errors.New("airport: probability distribution has no positive-weight entries")
	ErrMissingRequiredFlag = errors.New("airport: missing required command-line flag")
)
