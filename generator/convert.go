package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"kube2helm/parser"
	"kube2helm/utils"
)

// Convert loads the manifests at the input path, generates the chart and
// writes it to the output directory (or prints it in dry-run mode). Only an
// empty input set or a write failure is fatal, per-file and per-document
// problems are reported and skipped.
func Convert(options ConvertOptions) error {
	documents, err := parser.Load(options.InputPath)
	if err != nil {
		return err
	}

	chartName := options.ChartName
	if chartName == "" {
		chartName = filepath.Base(options.OutputDir)
	}

	chart, err := Generate(documents, chartName)
	if err != nil {
		return err
	}
	if options.ChartVersion != "" {
		chart.Version = options.ChartVersion
	}
	if options.AppVersion != "" {
		chart.AppVersion = options.AppVersion
	}

	// record the input set hash so a chart can be matched to its manifests
	if files, err := parser.Files(options.InputPath); err == nil {
		if hash, err := utils.HashManifestFiles(files); err == nil {
			chart.manifestHash = hash
		}
	}

	if options.DryRun {
		return chart.Print(os.Stdout)
	}

	if _, err := os.Stat(options.OutputDir); err == nil && !options.Force {
		if !utils.Confirm("The "+options.OutputDir+" directory already exists, overwrite it?", utils.IconWarning) {
			fmt.Println("Cancelled")
			return nil
		}
	}
	if err := chart.Write(options.OutputDir); err != nil {
		return fmt.Errorf("cannot write chart: %w", err)
	}
	fmt.Println(utils.IconSuccess, "Helm chart generated in", options.OutputDir)
	return nil
}
