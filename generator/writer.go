package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kube2helm/logger"
	"kube2helm/utils"
)

// ChartYaml renders the chart descriptor. The content only depends on the
// chart fields and the input hash, never on the run mode.
func (chart *HelmChart) ChartYaml() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if chart.manifestHash != "" {
		fmt.Fprintf(buf, "# Input manifests hash: %s\n", chart.manifestHash)
	}
	content, err := utils.EncodeBasicYaml(chart)
	if err != nil {
		return nil, err
	}
	buf.Write(content)
	return buf.Bytes(), nil
}

// ValuesYaml renders the values map.
func (chart *HelmChart) ValuesYaml() ([]byte, error) {
	return utils.EncodeBasicYaml(chart.Values)
}

// Write persists the chart: Chart.yaml, values.yaml, values.schema.json and
// one file per template under templates/. Any filesystem error aborts the
// run, a partial chart is never reported as a success.
func (chart *HelmChart) Write(outputDir string) error {
	templatesDir := filepath.Join(outputDir, "templates")
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return err
	}

	chartYaml, err := chart.ChartYaml()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "Chart.yaml"), chartYaml, 0o644); err != nil {
		return err
	}

	valuesYaml, err := chart.ValuesYaml()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "values.yaml"), valuesYaml, 0o644); err != nil {
		return err
	}

	schema, err := ValuesSchema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "values.schema.json"), schema, 0o644); err != nil {
		return err
	}

	for _, template := range chart.Templates {
		if err := os.WriteFile(filepath.Join(templatesDir, template.Filename), template.Content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Print renders the chart to the writer without touching the filesystem. The
// artifact bytes are exactly what Write would persist, only the section
// headers are added.
func (chart *HelmChart) Print(out io.Writer) error {
	chartYaml, err := chart.ChartYaml()
	if err != nil {
		return err
	}
	valuesYaml, err := chart.ValuesYaml()
	if err != nil {
		return err
	}
	schema, err := ValuesSchema()
	if err != nil {
		return err
	}

	logger.Yellow("[DRY RUN] Generated Helm Chart (Preview)")
	printSection(out, "Chart.yaml", chartYaml)
	printSection(out, "values.yaml", valuesYaml)
	printSection(out, "values.schema.json", schema)
	for _, template := range chart.Templates {
		printSection(out, filepath.Join("templates", template.Filename), template.Content)
	}
	return nil
}

func printSection(out io.Writer, name string, content []byte) {
	logger.Green(name + ":")
	out.Write(content)
	fmt.Fprintln(out)
}
