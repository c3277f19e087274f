package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// APIDescription is the machine-readable description of the client's API
// that the generated test suite is derived from.
type APIDescription struct {
	Client     string      `json:"client"`
	Version    string      `json:"version"`
	BasePath   string      `json:"base_path"`
	Operations []Operation `json:"operations"`
}

// Operation describes a single API operation
type Operation struct {
	Name           string `json:"name"`
	Resource       string `json:"resource"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	ExpectedStatus int    `json:"expected_status"`
	Deprecated     bool   `json:"deprecated"`
}

// LoadDescription reads and validates an API description JSON file
func LoadDescription(path string) (*APIDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read api description: %w", err)
	}

	var desc APIDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse api description: %w", err)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks the description for fields generation cannot work without
func (d *APIDescription) Validate() error {
	if d.Client == "" {
		return fmt.Errorf("api description missing client name")
	}
	for i, op := range d.Operations {
		if op.Name == "" {
			return fmt.Errorf("operation %d missing name", i)
		}
		if op.Resource == "" {
			return fmt.Errorf("operation %q missing resource", op.Name)
		}
		if op.Method == "" {
			return fmt.Errorf("operation %q missing method", op.Name)
		}
	}
	return nil
}

// ByResource groups operations by resource, each group and the group list
// sorted by name so rendered output is deterministic.
func (d *APIDescription) ByResource() []ResourceGroup {
	grouped := make(map[string][]Operation)
	for _, op := range d.Operations {
		grouped[op.Resource] = append(grouped[op.Resource], op)
	}

	var groups []ResourceGroup
	for resource, ops := range grouped {
		sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
		groups = append(groups, ResourceGroup{Resource: resource, Operations: ops})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Resource < groups[j].Resource })

	return groups
}

// ResourceGroup is the unit of generation: one test file per resource
type ResourceGroup struct {
	Resource   string
	Operations []Operation
}

// FileName returns the generated test file name for the group.
func (g ResourceGroup) FileName() string {
	return fmt.Sprintf("test_%s_api.py", strings.ToLower(g.Resource))
}
