package generator

import (
	"strings"

	"kube2helm/parser"
	"kube2helm/utils"

	"gopkg.in/yaml.v3"
)

// ContainerValues is the parameterizable part of one pod-template container.
type ContainerValues struct {
	Name       string         `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"title=Container name"`
	Repository string         `yaml:"repository,omitempty" json:"repository,omitempty" jsonschema:"title=Image repository"`
	Tag        string         `yaml:"tag,omitempty" json:"tag,omitempty" jsonschema:"title=Image tag"`
	Resources  map[string]any `yaml:"resources,omitempty" json:"resources,omitempty" jsonschema:"title=Resource requests and limits"`
}

// ServiceValues is the parameterizable part of a Service spec.
type ServiceValues struct {
	Type  string `yaml:"type,omitempty" json:"type,omitempty" jsonschema:"title=Service type"`
	Ports []any  `yaml:"ports,omitempty" json:"ports,omitempty" jsonschema:"title=Service ports"`
}

// ResourceValues holds everything extracted from one document into the chart
// values. Only the fields below are ever populated, whatever the document
// contains.
type ResourceValues struct {
	Name       string            `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"title=Resource name"`
	Namespace  string            `yaml:"namespace,omitempty" json:"namespace,omitempty" jsonschema:"title=Namespace"`
	Labels     map[string]string `yaml:"labels,omitempty" json:"labels,omitempty" jsonschema:"title=Labels"`
	Replicas   *int              `yaml:"replicas,omitempty" json:"replicas,omitempty" jsonschema:"title=Replica count"`
	Containers []ContainerValues `yaml:"containers,omitempty" json:"containers,omitempty" jsonschema:"title=Pod template containers"`
	Data       map[string]string `yaml:"data,omitempty" json:"data,omitempty" jsonschema:"title=ConfigMap or Secret data"`
	Service    *ServiceValues    `yaml:"service,omitempty" json:"service,omitempty" jsonschema:"title=Service configuration"`
}

// ExtractValues collects the parameterizable fields of a validated document.
// Absent source fields stay absent, no default is invented here.
func ExtractValues(doc *parser.Document) *ResourceValues {
	values := &ResourceValues{}

	if node := doc.Lookup("metadata", "name"); node != nil {
		values.Name = node.Value
	}
	if node := doc.Lookup("metadata", "namespace"); node != nil {
		values.Namespace = node.Value
	}
	if node := doc.Lookup("metadata", "labels"); node != nil {
		node.Decode(&values.Labels)
	}
	if node := doc.Lookup("spec", "replicas"); node != nil {
		var replicas int
		if err := node.Decode(&replicas); err == nil {
			values.Replicas = &replicas
		}
	}

	if containers := doc.Lookup("spec", "template", "spec", "containers"); containers != nil && containers.Kind == yaml.SequenceNode {
		for _, container := range containers.Content {
			values.Containers = append(values.Containers, extractContainer(container))
		}
	}

	switch doc.Kind() {
	case "ConfigMap", "Secret":
		// data is passed through as given, secrets stay base64 encoded
		if node := doc.Lookup("data"); node != nil {
			node.Decode(&values.Data)
		}
	case "Service":
		service := &ServiceValues{}
		if node := doc.Lookup("spec", "type"); node != nil {
			service.Type = node.Value
		}
		if node := doc.Lookup("spec", "ports"); node != nil {
			node.Decode(&service.Ports)
		}
		if service.Type != "" || service.Ports != nil {
			values.Service = service
		}
	}

	return values
}

func extractContainer(container *yaml.Node) ContainerValues {
	values := ContainerValues{}
	if node := utils.MappingValue(container, "name"); node != nil {
		values.Name = node.Value
	}
	if node := utils.MappingValue(container, "image"); node != nil {
		values.Repository, values.Tag = SplitImage(node.Value)
	}
	if node := utils.MappingValue(container, "resources"); node != nil {
		node.Decode(&values.Resources)
	}
	return values
}

// SplitImage cuts an image reference on the first ":". Without a tag, the tag
// defaults to "latest".
func SplitImage(image string) (repository, tag string) {
	if i := strings.Index(image, ":"); i >= 0 {
		return image[:i], image[i+1:]
	}
	return image, "latest"
}

// KnownPortNames resolves the well-known names of the extracted service
// ports, for the conversion report.
func KnownPortNames(service *ServiceValues) []string {
	names := []string{}
	if service == nil {
		return names
	}
	for _, port := range service.Ports {
		mapping, ok := port.(map[string]any)
		if !ok {
			continue
		}
		number, ok := mapping["port"].(int)
		if !ok {
			continue
		}
		if name := utils.GetServiceNameByPort(number); name != "" {
			names = append(names, name)
		}
	}
	return names
}
