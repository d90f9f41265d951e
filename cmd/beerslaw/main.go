// Command beerslaw fits a Beer's-Law calibration curve from a worksheet and
// back-calculates sample concentrations.
package main

import (
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
