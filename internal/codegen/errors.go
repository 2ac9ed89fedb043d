package codegen

import (
	"errors"
	"fmt"
)

// ErrNamespaceCollision marks documents whose namespace is shared with
// another document of the same run.
var ErrNamespaceCollision = errors.New("namespace collision")

type Stage string

const (
	StageNamespace Stage = "namespace"
	StageRender    Stage = "render"
	StageFormat    Stage = "format"
)

// DocumentError is the failure of one document's artifact. Other documents of
// the run are unaffected.
type DocumentError struct {
	Source string
	Name   string
	Stage  Stage
	Err    error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s/%s: %s: %v", e.Source, e.Name, e.Stage, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
