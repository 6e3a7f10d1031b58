// Command linter runs the outboundcalls analyzer.
package main

import (
	"github.com/gw0212/maplink-manager/cmd/linter/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
