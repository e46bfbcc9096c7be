package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"kube2helm/logger"
	"kube2helm/parser"

	"github.com/pmezard/go-difflib/difflib"
)

func init() {
	logger.NOLOG = true
}

func buildTestChart(t *testing.T) *HelmChart {
	t.Helper()
	documents, err := parser.Parse("web.yaml", []byte(deploymentFixture))
	if err != nil {
		t.Fatal(err)
	}
	chart, err := Generate(documents, "demo")
	if err != nil {
		t.Fatal(err)
	}
	return chart
}

// expectSameBytes fails with a unified diff when the two contents differ.
func expectSameBytes(t *testing.T, name string, expected, got []byte) {
	t.Helper()
	if bytes.Equal(expected, got) {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(got)),
		FromFile: name + " (rendered)",
		ToFile:   name + " (written)",
		Context:  3,
	})
	t.Errorf("%s differs between modes:\n%s", name, diff)
}

func TestWriteChartLayout(t *testing.T) {
	chart := buildTestChart(t)
	outputDir := t.TempDir()

	if err := chart.Write(outputDir); err != nil {
		t.Fatal(err)
	}
	for _, file := range []string{
		"Chart.yaml",
		"values.yaml",
		"values.schema.json",
		filepath.Join("templates", "web.yaml"),
	} {
		if _, err := os.Stat(filepath.Join(outputDir, file)); err != nil {
			t.Errorf("Expected %s to exist: %s", file, err)
		}
	}
}

func TestDryRunMatchesWrite(t *testing.T) {
	chart := buildTestChart(t)
	outputDir := t.TempDir()

	if err := chart.Write(outputDir); err != nil {
		t.Fatal(err)
	}

	preview := bytes.NewBuffer(nil)
	if err := chart.Print(preview); err != nil {
		t.Fatal(err)
	}

	chartYaml, err := chart.ChartYaml()
	if err != nil {
		t.Fatal(err)
	}
	valuesYaml, err := chart.ValuesYaml()
	if err != nil {
		t.Fatal(err)
	}
	schema, err := ValuesSchema()
	if err != nil {
		t.Fatal(err)
	}

	// written bytes are exactly the rendered artifacts
	written, err := os.ReadFile(filepath.Join(outputDir, "Chart.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	expectSameBytes(t, "Chart.yaml", chartYaml, written)

	written, err = os.ReadFile(filepath.Join(outputDir, "values.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	expectSameBytes(t, "values.yaml", valuesYaml, written)

	written, err = os.ReadFile(filepath.Join(outputDir, "values.schema.json"))
	if err != nil {
		t.Fatal(err)
	}
	expectSameBytes(t, "values.schema.json", schema, written)

	written, err = os.ReadFile(filepath.Join(outputDir, "templates", "web.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	expectSameBytes(t, "templates/web.yaml", chart.Templates[0].Content, written)

	// and the preview carries the same artifacts
	for name, content := range map[string][]byte{
		"Chart.yaml":         chartYaml,
		"values.yaml":        valuesYaml,
		"values.schema.json": schema,
		"template":           chart.Templates[0].Content,
	} {
		if !bytes.Contains(preview.Bytes(), content) {
			t.Errorf("Expected the dry-run preview to contain %s verbatim", name)
		}
	}
}

func TestWriteFailure(t *testing.T) {
	chart := buildTestChart(t)
	outputDir := t.TempDir()
	// make the output location unusable
	blocker := filepath.Join(outputDir, "chart")
	if err := os.WriteFile(blocker, []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := chart.Write(blocker); err == nil {
		t.Errorf("Expected a write failure")
	}
}

func TestConvertDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "web.yaml")
	if err := os.WriteFile(manifest, []byte(deploymentFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	outputDir := filepath.Join(tmpDir, "chart")
	err := Convert(ConvertOptions{
		InputPath: manifest,
		OutputDir: outputDir,
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %s", err)
	}
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Errorf("Expected dry-run to not touch the filesystem")
	}
}

func TestConvertWritesChart(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "web.yaml")
	if err := os.WriteFile(manifest, []byte(deploymentFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	outputDir := filepath.Join(tmpDir, "chart")
	err := Convert(ConvertOptions{
		InputPath: manifest,
		OutputDir: outputDir,
		Force:     true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %s", err)
	}
	content, err := os.ReadFile(filepath.Join(outputDir, "Chart.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(content, []byte("# Input manifests hash: ")) {
		t.Errorf("Expected the input hash comment in Chart.yaml")
	}
	if !bytes.Contains(content, []byte("name: chart")) {
		t.Errorf("Expected the chart name to default to the output directory name")
	}
}
