package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
)

type Result struct {
	Document *libopenapi.DocumentModel[v2.Swagger]
	Version  string
	Warnings []string
	RawData  []byte
}

func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document file: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	config := &datamodel.DocumentConfiguration{
		BasePath:            filepath.Dir(absPath),
		AllowFileReferences: true,
	}

	return loadWithConfig(data, config)
}

// Load parses an in-memory Swagger 2.0 document. External references are not
// followed.
func Load(data []byte) (*Result, error) {
	return loadWithConfig(data, nil)
}

func loadWithConfig(data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	var doc libopenapi.Document
	var err error

	if config != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, config)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "2.") {
		return nil, fmt.Errorf("unsupported document version: %q (only swagger 2.0 supported)", version)
	}

	model, err := doc.BuildV2Model()
	if model == nil {
		if err == nil {
			err = fmt.Errorf("empty model")
		}
		return nil, fmt.Errorf("building swagger model: %w", err)
	}

	result := &Result{
		Document: model,
		Version:  version,
		RawData:  data,
	}

	// Unresolved references still leave a usable model; names are taken from
	// the reference strings, not from resolution.
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}

	return result, nil
}
