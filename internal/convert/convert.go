// Package convert stores test reports in HDF5 container files keyed by build version.
package convert

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/open-edge-platform/report-tools/internal/config"
	"github.com/open-edge-platform/report-tools/internal/container"
	"github.com/open-edge-platform/report-tools/internal/report"
	"github.com/open-edge-platform/report-tools/internal/utils/logger"
	"github.com/schollz/progressbar/v3"
)

// ContainerExt is appended to the version to name the output file.
const ContainerExt = ".h5"

type attributeStore interface {
	SetAttribute(name string, value []byte) error
	Close() error
}

var openContainer = func(path string) (attributeStore, error) {
	return container.Open(path)
}

// Options controls where converted reports are written.
type Options struct {
	OutputDir string
	// DefaultVersion names the container when a report has no version property.
	DefaultVersion string
}

// Result describes one converted report.
type Result struct {
	Input   string
	Name    string
	Version string
	Output  string
	Size    int
}

// Summary describes the stored report for the operator, e.g. `r.xml stored in v2.1.h5 as "board" (1.2 kB)`.
func (r *Result) Summary() string {
	return fmt.Sprintf("%s stored in %s as %q (%s)", r.Input, r.Output, r.Name, humanize.Bytes(uint64(r.Size)))
}

// OutputPath returns the container file for version inside dir.
func OutputPath(dir, version string) string {
	return filepath.Join(dir, version+ContainerExt)
}

// Convert stores the report at input as an attribute of <OutputDir>/<version>.h5.
// The attribute is named after the report's summary name.
func Convert(input string, opts Options) (*Result, error) {
	log := logger.Logger()

	if opts.OutputDir == "" {
		opts.OutputDir = config.DefaultOutputDir
	}
	if opts.DefaultVersion == "" {
		opts.DefaultVersion = config.DefaultVersion
	}

	r, err := report.Load(input)
	if err != nil {
		return nil, err
	}

	name, err := r.Name()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	version, found, err := r.Version()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	if !found {
		log.Debugf("%s has no %s property, using %q", input, report.VersionProperty, opts.DefaultVersion)
		version = opts.DefaultVersion
	}
	if version == "" || strings.ContainsAny(version, `/\`) || version == "." || version == ".." {
		return nil, fmt.Errorf("%s: version %q cannot be used as a file name", input, version)
	}
	log.Infof("version: %s", version)

	output := OutputPath(opts.OutputDir, version)
	log.Infof("output: %s", output)

	store, err := openContainer(output)
	if err != nil {
		return nil, err
	}

	raw := r.Raw()
	if err := store.SetAttribute(name, raw); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", output, err)
	}

	log.Debugf("stored %s of %s as attribute %q", humanize.Bytes(uint64(len(raw))), input, name)
	return &Result{
		Input:   input,
		Name:    name,
		Version: version,
		Output:  output,
		Size:    len(raw),
	}, nil
}

// ConvertAll converts inputs in order and stops at the first error. With more than one input
// a progress bar is drawn on progress; a nil writer disables it.
func ConvertAll(inputs []string, opts Options, progress io.Writer) ([]Result, error) {
	var bar *progressbar.ProgressBar
	if progress != nil && len(inputs) > 1 {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	results := make([]Result, 0, len(inputs))
	for _, input := range inputs {
		if bar != nil {
			bar.Describe(fmt.Sprintf("converting %s", filepath.Base(input)))
		}

		res, err := Convert(input, opts)
		if err != nil {
			return results, err
		}
		results = append(results, *res)

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return results, nil
}
