package etch

import "errors"

// ErrParameterBounds indicates a construction parameter outside its valid range.
var ErrParameterBounds = errors.New("etch: parameter out of valid bounds")
