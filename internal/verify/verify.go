// Package verify decides whether a test report may be published.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jacoelho/xsd"
	"github.com/open-edge-platform/report-tools/internal/report"
	"github.com/open-edge-platform/report-tools/internal/utils/logger"
	"github.com/open-edge-platform/report-tools/internal/versions"
)

const (
	reportExt = ".xml"
	mebibyte  = 1024 * 1024
)

// Failure is a failed acceptance check. Its message is meant for the person publishing the report.
type Failure struct {
	Check   string
	Message string
}

func (f *Failure) Error() string { return f.Message }

// IsFailure reports whether err is, or wraps, a *Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

func fail(check, format string, args ...interface{}) error {
	return &Failure{Check: check, Message: fmt.Sprintf(format, args...)}
}

// Options holds the thresholds a report must satisfy.
type Options struct {
	Path string
	// CheckVersion enables the remote version check.
	CheckVersion bool
	MaxSizeMB    float64
	MaxErrors    int
	MaxFailures  int
	// SchemaFile, when set, is an XSD the report must conform to.
	SchemaFile string
	// Versions supplies the published versions; only used when CheckVersion is set.
	Versions versions.Source
	// Out receives informational messages such as "Version not found.".
	Out io.Writer
}

// Verify runs the acceptance checks in order and returns the first *Failure. Other errors mean
// the report could not be examined at all.
func Verify(ctx context.Context, opts Options) error {
	log := logger.Logger()
	path := opts.Path

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fail("exists", "XML report not found at %s", path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if !CheckExtension(path) {
		return fail("extension", "Not an XML file given")
	}

	if opts.SchemaFile != "" {
		log.Debugf("validating %s against %s", path, opts.SchemaFile)
		if err := CheckSchema(path, opts.SchemaFile); err != nil {
			return err
		}
	}

	r, err := report.Load(path)
	if err != nil {
		return err
	}

	ok, err := CheckName(r)
	if err != nil {
		return err
	}
	if !ok {
		return fail("name", "Report name does not match the platform name given in the report")
	}

	ok, err = CheckVersion(ctx, r, opts.CheckVersion, opts.Versions, opts.Out)
	if err != nil {
		return err
	}
	if !ok {
		return fail("version", "Incorrect version of zephyr")
	}

	ok, err = CheckFileSize(path, opts.MaxSizeMB)
	if err != nil {
		return err
	}
	if !ok {
		if info, err := os.Stat(path); err == nil {
			logger.Logger().Warnf("%s is %s, over the %s limit", path,
				humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(opts.MaxSizeMB*mebibyte)))
		}
		return fail("size", "Size of the XML report at %s is >%s Mb", path, formatLimit(opts.MaxSizeMB))
	}

	ok, err = CheckAttributeValue(r, "failures", opts.MaxFailures)
	if err != nil {
		return err
	}
	if !ok {
		return fail("failures", "XML report at %s has too many failures (>%d. It requires manual verification.)", path, opts.MaxFailures)
	}

	ok, err = CheckAttributeValue(r, "errors", opts.MaxErrors)
	if err != nil {
		return err
	}
	if !ok {
		return fail("errors", "XML report at %s has too many errors (>%d. It requires manual verification.)", path, opts.MaxErrors)
	}

	return nil
}

// formatLimit prints a size limit with at least one decimal place, so 5 reads "5.0".
func formatLimit(mb float64) string {
	s := strconv.FormatFloat(mb, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// CheckExtension reports whether path names an XML file.
func CheckExtension(path string) bool {
	return strings.HasSuffix(filepath.Base(path), reportExt)
}

// CheckName reports whether the report's file name, minus its extension, matches the
// platform name recorded in the report.
func CheckName(r *report.Report) (bool, error) {
	name, err := r.Name()
	if err != nil {
		return false, err
	}
	platform := strings.TrimSuffix(filepath.Base(r.Path()), reportExt)
	logger.Logger().Debugf("file platform %q, report platform %q", platform, name)
	return platform == name, nil
}

// CheckVersion reports whether the report's version property is one of the published
// versions. A disabled check passes without contacting src.
func CheckVersion(ctx context.Context, r *report.Report, enabled bool, src versions.Source, out io.Writer) (bool, error) {
	if !enabled {
		return true, nil
	}
	if src == nil {
		return false, fmt.Errorf("version check enabled without a versions source")
	}

	published, err := src.Versions(ctx)
	if err != nil {
		return false, err
	}

	props, err := r.Properties()
	if err != nil {
		return false, err
	}
	// The first version property decides.
	version, found := "", false
	for _, p := range props {
		if p.Name == report.VersionProperty {
			version, found = p.Value, true
			break
		}
	}
	if !found {
		if out != nil {
			fmt.Fprintln(out, "Version not found.")
		}
		return false, nil
	}

	logger.Logger().Debugf("report version %q checked against %d published versions", version, len(published))
	return versions.Contains(published, version), nil
}

// CheckFileSize reports whether the file at path is no larger than maxMB mebibytes.
func CheckFileSize(path string, maxMB float64) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("checking size of %s: %w", path, err)
	}
	logger.Logger().Debugf("report size %s, limit %v MB", humanize.IBytes(uint64(info.Size())), maxMB)
	return float64(info.Size())/mebibyte <= maxMB, nil
}

// CheckAttributeValue reports whether the summary's integer attribute item is at most maxValue.
func CheckAttributeValue(r *report.Report, item string, maxValue int) (bool, error) {
	n, err := r.Count(item)
	if err != nil {
		return false, err
	}
	logger.Logger().Debugf("report %s: %d (limit %d)", item, n, maxValue)
	return n <= maxValue, nil
}

// CheckSchema validates the XML file at path against the XSD at schemaFile. Violations are
// returned as a *Failure; a schema that cannot be loaded is an ordinary error.
func CheckSchema(path, schemaFile string) error {
	schema, err := xsd.LoadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("loading schema %s: %w", schemaFile, err)
	}
	if err := schema.ValidateFile(path); err != nil {
		return fail("schema", "XML report at %s does not conform to schema %s: %v", path, schemaFile, err)
	}
	return nil
}
