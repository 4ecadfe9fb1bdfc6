package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed capture_schema.json
var captureSchemaJSON []byte

const captureSchemaURL = "capture.schema.json"

var (
	captureSchemaOnce sync.Once
	captureSchema     *jsonschema.Schema
	captureSchemaErr  error
)

// SchemaError is one leaf schema violation with its instance location.
type SchemaError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// SchemaErrors collects every leaf violation of one document.
type SchemaErrors []*SchemaError

func (e SchemaErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d schema violations: %s", len(e), strings.Join(msgs, "; "))
}

func compiledCaptureSchema() (*jsonschema.Schema, error) {
	captureSchemaOnce.Do(func() {
		var schemaDoc any
		if err := json.Unmarshal(captureSchemaJSON, &schemaDoc); err != nil {
			captureSchemaErr = fmt.Errorf("unmarshal capture schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(captureSchemaURL, schemaDoc); err != nil {
			captureSchemaErr = fmt.Errorf("add capture schema resource: %w", err)
			return
		}
		captureSchema, captureSchemaErr = c.Compile(captureSchemaURL)
	})
	return captureSchema, captureSchemaErr
}

// CheckSchema validates a raw capture document against the embedded capture
// schema. A non-nil error is a SchemaErrors when the document parsed but
// does not match.
func CheckSchema(data []byte) error {
	sch, err := compiledCaptureSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal capture document: %w", err)
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var errs SchemaErrors
	for _, cause := range flattenValidationErrors(ve) {
		errs = append(errs, &SchemaError{
			Path:    strings.Join(cause.InstanceLocation, "/"),
			Message: fmt.Sprintf("%v", cause.ErrorKind),
		})
	}
	return errs
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
