// MIT License

// Copyright (c) 2023 wetrycode

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package resourcefeed

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ResourceSchema CUE definition of the target resource
//
//go:embed schema/resource.cue
var ResourceSchema []byte

// resourceDefinition definition looked up in a schema source
const resourceDefinition = "#Resource"

// Validator checks a resource against the target schema
type Validator interface {
	// Validate nil when resource conforms, a *ValidationError otherwise
	Validate(resource *Resource) error
}

// ValidationError a schema nonconformance
type ValidationError struct {
	// Fields paths of the offending fields
	Fields []string
	// Detail validator message
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchemaNonconformance.Error(), e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return ErrSchemaNonconformance
}

// Outcome the result of validating one resource.
// Exactly one of Resource and Err is set.
type Outcome struct {
	Resource *Resource
	Err      error
}

// Accepted true when the resource conformed
func (o Outcome) Accepted() bool {
	return o.Err == nil
}

// Check runs validator on resource and wraps the result as an Outcome
func Check(validator Validator, resource *Resource) Outcome {
	if err := validator.Validate(resource); err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Resource: resource}
}

// CueValidator validates resources with a CUE definition
type CueValidator struct {
	// mu cue contexts are not safe for concurrent use
	mu         sync.Mutex
	ctx        *cue.Context
	definition cue.Value
}

// NewCueValidator compiles source and looks up its #Resource definition
func NewCueValidator(source []byte) (*CueValidator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(source)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile resource schema: %w", err)
	}
	definition := schema.LookupPath(cue.ParsePath(resourceDefinition))
	if err := definition.Err(); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", resourceDefinition, err)
	}
	if !definition.Exists() {
		return nil, fmt.Errorf("schema has no %s definition", resourceDefinition)
	}
	return &CueValidator{ctx: ctx, definition: definition}, nil
}

// NewDefaultValidator validator for the embedded ResourceSchema
func NewDefaultValidator() *CueValidator {
	v, err := NewCueValidator(ResourceSchema)
	if err != nil {
		panic(fmt.Errorf("fatal error resource schema: %s", err))
	}
	return v
}

func (v *CueValidator) Validate(resource *Resource) error {
	if resource == nil {
		return &ValidationError{Detail: "resource is nil"}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	value := v.ctx.Encode(resource.fields)
	if err := value.Err(); err != nil {
		return &ValidationError{Detail: err.Error()}
	}
	err := v.definition.Unify(value).Validate(cue.Concrete(true), cue.All())
	if err == nil {
		return nil
	}
	return newValidationError(err)
}

func newValidationError(err error) *ValidationError {
	fields := make(map[string]struct{})
	messages := make([]string, 0)
	for _, e := range cueerrors.Errors(err) {
		if path := strings.Join(e.Path(), "."); path != "" {
			fields[path] = struct{}{}
		}
		messages = append(messages, e.Error())
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return &ValidationError{
		Fields: names,
		Detail: strings.Join(messages, "; "),
	}
}
