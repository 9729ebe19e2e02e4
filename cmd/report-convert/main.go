// Command report-convert stores JUnit XML test reports in HDF5 files named after the
// build version found in each report.
//
//	report-convert --input frdm_k64f.xml --output results/
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := createRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
