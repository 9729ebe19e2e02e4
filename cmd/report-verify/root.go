package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-edge-platform/report-tools/internal/cli"
	"github.com/open-edge-platform/report-tools/internal/config"
	"github.com/open-edge-platform/report-tools/internal/utils/logger"
	"github.com/open-edge-platform/report-tools/internal/verify"
	"github.com/spf13/cobra"
)

// createRootCommand creates the report-verify command
func createRootCommand() *cobra.Command {
	globals := &cli.Globals{}
	flags := &verifyFlags{}

	rootCmd := &cobra.Command{
		Use:   "report-verify -P REPORT -V {0|1} [flags]",
		Short: "Verify a test report before publishing",
		Long: `Verify checks that a JUnit XML report fulfils the requirements for publishing:
the file is an .xml file named after the platform in the report, the reported
version is a published one (when -V is non-zero), the file is small enough and
the failure and error counts are within limits.

Example:
  report-verify -P frdm_k64f.xml -V 1`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.PreRunHook(globals),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeVerify(cmd, flags)
		},
	}

	cli.AddGlobalFlags(rootCmd, globals)

	rootCmd.Flags().StringVarP(&flags.path, "path", "P", "",
		"Path to the report which will be verified")
	rootCmd.Flags().IntVarP(&flags.versionCheck, "version", "V", 0,
		"Enable version check (0 disables it)")
	rootCmd.Flags().Float64VarP(&flags.maxSize, "max-size", "S", config.DefaultMaxSizeMB,
		"Maximum size of a file that is accepted, in MB")
	rootCmd.Flags().IntVarP(&flags.maxErrors, "max-errors", "E", config.DefaultMaxErrors,
		"Maximum accepted number of errors in the report")
	rootCmd.Flags().IntVarP(&flags.maxFailures, "max-failures", "F", config.DefaultMaxFailures,
		"Maximum accepted number of failures in the report")
	rootCmd.Flags().StringVar(&flags.schemaFile, "schema", "",
		"XSD the report must conform to")
	rootCmd.Flags().StringVar(&flags.versionsURL, "versions-url", "",
		"Endpoint publishing the accepted versions (default from configuration)")

	_ = rootCmd.MarkFlagRequired("path")
	_ = rootCmd.MarkFlagRequired("version")
	_ = rootCmd.MarkFlagFilename("path", "xml")
	_ = rootCmd.MarkFlagFilename("schema", "xsd")

	return rootCmd
}

// executeVerify handles the verify command logic
func executeVerify(cmd *cobra.Command, flags *verifyFlags) error {
	log := logger.Logger()
	cfg := config.Global()

	opts := resolveOptions(cmd.Flags(), flags, cfg)
	opts.Out = cmd.OutOrStdout()
	if opts.CheckVersion {
		url := resolveVersionsURL(cmd.Flags(), flags, cfg)
		log.Debugf("version check enabled, versions list at %s", url)
		opts.Versions = newVersionSource(url, cfg.Verify.HTTPTimeout)
	}

	log.Infof("verifying report %s", opts.Path)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	err := verify.Verify(ctx, opts)

	var failure *verify.Failure
	if errors.As(err, &failure) {
		fmt.Fprintln(cmd.OutOrStdout(), failure.Message)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report %s verified.\n", opts.Path)
	return nil
}
