// Command shaclc loads a shapes graph, compiles it, and either prints a
// one-shot conformance report or serves the same check over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/cayleygraph/shaclc/clog/glog"
	"github.com/cayleygraph/shaclc/cmd/shaclc/command"
)

func main() {
	root := &cobra.Command{
		Use:   "shaclc",
		Short: "shaclc compiles and evaluates SHACL-like shape constraints over an RDF graph.",
	}
	root.AddCommand(
		command.NewCheckCmd(),
		command.NewServeCmd(),
		command.NewFormatsCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
