package manifest

import "errors"

var (
	ErrParse   = errors.New("manifest parse failed")
	ErrCompile = errors.New("recipe compile failed")
)
