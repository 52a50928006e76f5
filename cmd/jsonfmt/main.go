// jsonfmt is the reference formatter built on the framework: a JSON
// formatter with configurable key sorting, colon spacing, and trailing
// newline enforcement.
package main

import (
	"github.com/corey/fmtkit/cli"
	"github.com/corey/fmtkit/jsonfmt"
)

var version = "0.1.0"

func main() {
	cli.NewBuilder[jsonfmt.Config]("jsonfmt", jsonfmt.Language{}).
		WithPipeline(jsonfmt.Pipeline()).
		WithDefaultConfig(jsonfmt.DefaultConfig()).
		WithVersion(version).
		Execute()
}
