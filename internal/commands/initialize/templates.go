package initialize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/herald/internal/config"
)

// Template is a pre-configured starter configuration for common layouts.
type Template struct {
	Name        string
	Description string
	Config      config.Config
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "basic",
			Description: "Resolve a package in the current directory",
			Config: config.Config{
				Directory: "changelog.d",
			},
		},
		{
			Name:        "src",
			Description: "Resolve a package under a src/ layout",
			Config: config.Config{
				PackageDir: "src",
				Directory:  "changelog.d",
			},
		},
		{
			Name:        "workspace",
			Description: "Scan sibling projects for installed metadata",
			Config: config.Config{
				Directory: "changelog.d",
				Metadata: &config.MetadataConfig{
					Roots:    []string{".", ".."},
					MaxDepth: 2,
				},
			},
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}
