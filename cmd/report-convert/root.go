package main

import (
	"fmt"

	"github.com/open-edge-platform/report-tools/internal/cli"
	"github.com/open-edge-platform/report-tools/internal/config"
	"github.com/open-edge-platform/report-tools/internal/convert"
	"github.com/open-edge-platform/report-tools/internal/utils/logger"
	"github.com/spf13/cobra"
)

// Converter command flags
var (
	inputFiles []string
	outputDir  string
)

// createRootCommand creates the report-convert command
func createRootCommand() *cobra.Command {
	globals := &cli.Globals{}

	rootCmd := &cobra.Command{
		Use:   "report-convert --input REPORT [--input REPORT...] [--output DIR]",
		Short: "Convert XML test reports to HDF5",
		Long: `Convert stores the raw bytes of a JUnit XML test report as an attribute of
an HDF5 file. The file is named after the "version" property of the report
(<version>.h5, or unknow.h5 when the report has none) and the attribute is
named after the report's platform. Existing files are appended to.

Inputs ending in .gz, .zst or .xz are decompressed before storing.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.PreRunHook(globals),
		RunE:              executeConvert,
	}

	cli.AddGlobalFlags(rootCmd, globals)

	rootCmd.Flags().StringArrayVar(&inputFiles, "input", nil,
		"Path to the input xml file (repeatable)")
	rootCmd.Flags().StringVar(&outputDir, "output", config.DefaultOutputDir,
		"Path to the output h5 folder")

	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagFilename("input", "xml", "gz", "zst", "xz")
	_ = rootCmd.MarkFlagDirname("output")

	return rootCmd
}

// executeConvert handles the convert command logic
func executeConvert(cmd *cobra.Command, args []string) error {
	log := logger.Logger()
	helpers := config.NewConfigHelpers(config.Global())

	dir := outputDir
	if !cmd.Flags().Changed("output") {
		abs, err := helpers.OutputDir()
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}
		dir = abs
	}
	if err := config.EnsureDir(dir); err != nil {
		return err
	}
	for _, in := range inputFiles {
		if err := config.EnsureFile(in); err != nil {
			return err
		}
	}

	opts := convert.Options{
		OutputDir:      dir,
		DefaultVersion: helpers.DefaultVersion(),
	}

	results, err := convert.ConvertAll(inputFiles, opts, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	for _, r := range results {
		log.Infof("✓ %s", r.Summary())
	}
	return nil
}
