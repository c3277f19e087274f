package generate

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"ptu/internal/discovery"
)

//go:embed templates/testfile.py.tmpl
var testFileTemplate string

// templateData is what one rendered test file sees
type templateData struct {
	Header   string
	Client   string
	Version  string
	BasePath string
	Resource string
	Class    string
	Module   string
	Cases    []templateCase
}

type templateCase struct {
	Name       string
	Operation  Operation
	FullPath   string
	Deprecated bool
}

var templateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
}

func parseTemplates() (*template.Template, error) {
	return template.New("testfile").Funcs(templateFuncs).Parse(testFileTemplate)
}

// renderGroup renders the test file for one resource group. caseNames maps
// operation name to the (possibly collision-renamed) test case name.
func renderGroup(tmpl *template.Template, desc *APIDescription, group ResourceGroup, caseNames map[string]string) ([]byte, error) {
	data := templateData{
		Header:   discovery.GeneratedHeader,
		Client:   desc.Client,
		Version:  desc.Version,
		BasePath: desc.BasePath,
		Resource: group.Resource,
		Class:    fmt.Sprintf("Test%sApi", pascalCase(group.Resource)),
		Module:   fmt.Sprintf("%s_api", strings.ToLower(group.Resource)),
	}

	for _, op := range group.Operations {
		data.Cases = append(data.Cases, templateCase{
			Name:       caseNames[op.Name],
			Operation:  op,
			FullPath:   joinPath(desc.BasePath, op.Path),
			Deprecated: op.Deprecated,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", group.FileName(), err)
	}
	return buf.Bytes(), nil
}

// pascalCase converts snake_case or kebab-case resource names to PascalCase.
func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func joinPath(base, path string) string {
	base = strings.TrimSuffix(base, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
