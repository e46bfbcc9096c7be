package generator

import (
	"strconv"

	"kube2helm/parser"
	"kube2helm/utils"

	"gopkg.in/yaml.v3"
)

// Indentation depths of the block placeholders, matching where each field
// sits in the rewritten document.
const (
	labelsIndent    = 4
	resourcesIndent = 10
	dataIndent      = 2
	portsIndent     = 4
)

// RewriteDocument returns a copy of the document where the parameterizable
// fields are replaced by placeholder expressions referencing the resource
// key. Everything it does not recognize passes through unchanged, the
// rewriter is selective, never destructive. The input document is not
// mutated.
func RewriteDocument(doc *parser.Document, key string) (*yaml.Node, error) {
	root := utils.CloneNode(doc.Root)

	if metadata := utils.MappingValue(root, "metadata"); metadata != nil {
		if name := utils.MappingValue(metadata, "name"); name != nil {
			utils.SetScalar(name, scalarPlaceholder(key, "name", name.Value))
		}
		if namespace := utils.MappingValue(metadata, "namespace"); namespace != nil {
			utils.SetScalar(namespace, scalarPlaceholder(key, "namespace", namespace.Value))
		}
		if utils.MappingValue(metadata, "labels") != nil {
			utils.ReplaceMappingValue(metadata, "labels",
				utils.StringNode(blockPlaceholder(key, "labels", labelsIndent)))
		}
	}

	if spec := utils.MappingValue(root, "spec"); spec != nil {
		if replicas := utils.MappingValue(spec, "replicas"); replicas != nil {
			utils.SetScalar(replicas, numberPlaceholder(key, "replicas", replicas.Value))
		}
		rewriteContainers(spec, key)
	}

	switch doc.Kind() {
	case "ConfigMap", "Secret":
		if utils.MappingValue(root, "data") != nil {
			utils.ReplaceMappingValue(root, "data",
				utils.StringNode(blockPlaceholder(key, "data", dataIndent)))
		}
	case "Service":
		if spec := utils.MappingValue(root, "spec"); spec != nil {
			if serviceType := utils.MappingValue(spec, "type"); serviceType != nil {
				utils.SetScalar(serviceType, scalarPlaceholder(key, "service.type", serviceType.Value))
			}
			if utils.MappingValue(spec, "ports") != nil {
				utils.ReplaceMappingValue(spec, "ports",
					utils.StringNode(listPlaceholder(key, "service.ports", portsIndent)))
			}
		}
	}

	return root, nil
}

// rewriteContainers replaces each container image with a repository:tag
// placeholder pair and each resources block with a block placeholder, indexed
// by the container position.
func rewriteContainers(spec *yaml.Node, key string) {
	containers := utils.LookupPath(spec, "template", "spec", "containers")
	if containers == nil || containers.Kind != yaml.SequenceNode {
		return
	}
	for i, container := range containers.Content {
		if image := utils.MappingValue(container, "image"); image != nil {
			repository, tag := SplitImage(image.Value)
			utils.SetScalar(image, imagePlaceholder(key, i, repository, tag))
		}
		if utils.MappingValue(container, "resources") != nil {
			utils.ReplaceMappingValue(container, "resources",
				utils.StringNode(blockPlaceholder(key, containerPath(i, "resources"), resourcesIndent)))
		}
	}
}

func containerPath(index int, field string) string {
	return "containers[" + strconv.Itoa(index) + "]." + field
}
