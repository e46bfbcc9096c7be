package generator

import (
	"fmt"
	"strings"

	"kube2helm/parser"
	"kube2helm/utils"
)

// Generate builds a chart from the given documents.
// This does not write files to disk, it only creates the HelmChart object.
//
// For each document, Generate will:
//
//   - validate the document and skip it with a warning when it is null, not a
//     mapping, or missing apiVersion/kind
//   - resolve a unique resource key and template filename
//   - extract the parameterizable values into the chart values
//   - rewrite the document fields as placeholder expressions
//
// Documents are merged sequentially, so a rejected document never affects its
// siblings and the first document seen wins an unmodified key on collision.
func Generate(documents []*parser.Document, chartName string) (*HelmChart, error) {
	chart := NewChart(chartName)

	for _, doc := range documents {
		if err := doc.Validate(); err != nil {
			utils.Warn("skipping document ", doc.Index, " of ", doc.SourceFile, ": ", err)
			continue
		}

		gvk := doc.GroupVersionKind()
		name := ""
		if node := doc.Lookup("metadata", "name"); node != nil {
			name = node.Value
		}
		fmt.Println(kindIcon(gvk.Kind), "Converting", gvk.Kind, name)

		if err := chart.AddDocument(doc); err != nil {
			return nil, err
		}

		// name the well-known ports in the report
		key := chart.Templates[len(chart.Templates)-1].ResourceKey
		if values := chart.Values[key]; values.Service != nil {
			if names := KnownPortNames(values.Service); len(names) > 0 {
				fmt.Println(utils.IconPlug, "  exposing", strings.Join(names, ", "))
			}
		}
	}

	return chart, nil
}

func kindIcon(kind string) utils.Icon {
	switch kind {
	case "Deployment", "StatefulSet", "DaemonSet":
		return utils.IconPackage
	case "Service":
		return utils.IconPlug
	case "ConfigMap":
		return utils.IconConfig
	case "Secret":
		return utils.IconSecret
	default:
		return utils.IconNote
	}
}
