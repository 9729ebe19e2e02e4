// Command report-verify checks a JUnit XML test report against the publishing rules.
//
//	report-verify -P frdm_k64f.xml -V 1
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/open-edge-platform/report-tools/internal/config"
	"github.com/open-edge-platform/report-tools/internal/utils/network"
	"github.com/open-edge-platform/report-tools/internal/verify"
	"github.com/open-edge-platform/report-tools/internal/versions"
	"github.com/spf13/pflag"
)

func main() {
	cmd := createRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !verify.IsFailure(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var newVersionSource = func(url string, timeout time.Duration) versions.Source {
	return versions.NewClient(url, network.NewSecureHTTPClient(timeout))
}

// verifyFlags mirrors the command line; zero values are replaced from the configuration
// unless the flag was given explicitly.
type verifyFlags struct {
	path         string
	versionCheck int
	maxSize      float64
	maxErrors    int
	maxFailures  int
	schemaFile   string
	versionsURL  string
}

func resolveOptions(fs *pflag.FlagSet, f *verifyFlags, cfg *config.GlobalConfig) verify.Options {
	opts := verify.Options{
		Path:         f.path,
		CheckVersion: f.versionCheck != 0,
		MaxSizeMB:    cfg.Verify.MaxSizeMB,
		MaxErrors:    cfg.Verify.MaxErrors,
		MaxFailures:  cfg.Verify.MaxFailures,
		SchemaFile:   cfg.Verify.SchemaFile,
	}
	if fs.Changed("max-size") {
		opts.MaxSizeMB = f.maxSize
	}
	if fs.Changed("max-errors") {
		opts.MaxErrors = f.maxErrors
	}
	if fs.Changed("max-failures") {
		opts.MaxFailures = f.maxFailures
	}
	if fs.Changed("schema") {
		opts.SchemaFile = f.schemaFile
	}
	return opts
}

func resolveVersionsURL(fs *pflag.FlagSet, f *verifyFlags, cfg *config.GlobalConfig) string {
	if fs.Changed("versions-url") && f.versionsURL != "" {
		return f.versionsURL
	}
	return config.NewConfigHelpers(cfg).VersionsURL()
}
