package generator

import (
	"fmt"
	"strconv"
	"strings"

	"kube2helm/parser"
	"kube2helm/utils"

	"k8s.io/apimachinery/pkg/util/validation"
)

// ChartTemplate is one rewritten manifest document with its filename in the
// templates directory.
type ChartTemplate struct {
	Filename    string
	ResourceKey string
	Content     []byte
}

// ConvertOptions are the options to convert kubernetes manifests to a helm chart.
type ConvertOptions struct {
	InputPath    string
	OutputDir    string
	ChartName    string
	ChartVersion string
	AppVersion   string
	DryRun       bool
	Force        bool
}

// HelmChart is a Helm Chart representation. It contains the chart descriptor
// fields, the values map and the rewritten templates.
type HelmChart struct {
	Values       map[string]*ResourceValues `yaml:"-"`
	Templates    []ChartTemplate            `yaml:"-"`
	manifestHash string                     `yaml:"-"`
	Name         string                     `yaml:"name"`
	ApiVersion   string                     `yaml:"apiVersion"`
	Description  string                     `yaml:"description"`
	Type         string                     `yaml:"type"`
	Version      string                     `yaml:"version"`
	AppVersion   string                     `yaml:"appVersion"`
}

// NewChart creates a new empty chart with the given name.
func NewChart(name string) *HelmChart {
	return &HelmChart{
		Name:        FixedChartName(name),
		ApiVersion:  "v2",
		Description: "Auto-generated Helm chart by kube2helm",
		Type:        "application",
		Version:     "0.1.0",
		AppVersion:  "1.0.0",
		Values:      map[string]*ResourceValues{},
	}
}

// FixedChartName makes a name acceptable as a chart name (DNS-1123
// subdomain). Underscores and invalid runes become dashes.
func FixedChartName(name string) string {
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '-'
	}, name)
	name = strings.Trim(name, "-.")
	if len(validation.IsDNS1123Subdomain(name)) > 0 {
		name = "generated-chart"
	}
	return name
}

// AddDocument extracts the document values and rewrites the document as a
// template, then registers both under a unique resource key and filename.
func (chart *HelmChart) AddDocument(doc *parser.Document) error {
	key := chart.uniqueResourceKey(ResourceKey(doc))
	filename := chart.uniqueTemplateFilename(TemplateFilename(doc))

	rewritten, err := RewriteDocument(doc, key)
	if err != nil {
		return err
	}
	content, err := utils.EncodeBasicYaml(rewritten)
	if err != nil {
		return fmt.Errorf("cannot serialize template %s: %w", filename, err)
	}

	// register both sides together so values and templates stay one-to-one
	chart.Values[key] = ExtractValues(doc)
	chart.Templates = append(chart.Templates, ChartTemplate{
		Filename:    filename,
		ResourceKey: key,
		Content:     content,
	})
	return nil
}

// uniqueResourceKey disambiguates resource key collisions across source
// files. The first document keeps the plain key, later ones get a numeric
// suffix.
func (chart *HelmChart) uniqueResourceKey(key string) string {
	if _, exists := chart.Values[key]; !exists {
		return key
	}
	for n := 1; ; n++ {
		candidate := key + "_" + strconv.Itoa(n)
		if _, exists := chart.Values[candidate]; !exists {
			return candidate
		}
	}
}

// uniqueTemplateFilename does the same for template filenames, inserting the
// suffix before the extension.
func (chart *HelmChart) uniqueTemplateFilename(filename string) string {
	if !chart.hasTemplate(filename) {
		return filename
	}
	stem, ext := splitExt(filename)
	for n := 1; ; n++ {
		candidate := stem + "-" + strconv.Itoa(n) + ext
		if !chart.hasTemplate(candidate) {
			return candidate
		}
	}
}

func (chart *HelmChart) hasTemplate(filename string) bool {
	for _, template := range chart.Templates {
		if template.Filename == filename {
			return true
		}
	}
	return false
}
