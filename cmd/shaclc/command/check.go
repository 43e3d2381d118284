// Package command implements the shaclc subcommands, one file per
// command, the same layout cmd/cayley/command uses.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/shaclc/clog"
	"github.com/cayleygraph/shaclc/conformance"
	"github.com/cayleygraph/shaclc/graph/graphmock"
	"github.com/cayleygraph/shaclc/quad"
	_ "github.com/cayleygraph/shaclc/quad/nquads"
	"github.com/cayleygraph/shaclc/shapeparser"
)

const keyCheckTimeout = "check.timeout"

const (
	flagShapes = "shapes"
	flagData   = "data"
	flagFormat = "format"
)

var errNonConformant = errors.New("shaclc: one or more shapes did not conform")
var errNoShapesFlag = fmt.Errorf("shaclc: --%s is required", flagShapes)

// NewCheckCmd builds the "check" subcommand: load a shapes graph (and,
// optionally, a separate data graph), compile it, and print a
// conformance report for every named shape.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a data graph against a shapes graph and print a conformance report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shapesPath, _ := cmd.Flags().GetString(flagShapes)
			dataPath, _ := cmd.Flags().GetString(flagData)
			format, _ := cmd.Flags().GetString(flagFormat)
			if shapesPath == "" && len(args) > 0 {
				shapesPath = args[0]
			}
			if shapesPath == "" {
				return errNoShapesFlag
			}
			if dataPath == "" {
				dataPath = shapesPath
			}

			quads, err := loadQuads(shapesPath, format)
			if err != nil {
				return err
			}
			if dataPath != shapesPath {
				dataQuads, err := loadQuads(dataPath, format)
				if err != nil {
					return err
				}
				quads = append(quads, dataQuads...)
			}
			clog.Infof("loaded %d quads from %q", len(quads), shapesPath)

			store := graphmock.New(quads)
			ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration(keyCheckTimeout))
			defer cancel()

			schema, perr := shapeparser.Parse(ctx, store, shapeparser.Options{Full: true})
			if schema == nil {
				return fmt.Errorf("shaclc: parsing shapes graph: %w", perr)
			}
			if perr != nil {
				clog.Warningf("shaclc: %v", perr)
			}

			driver := conformance.NewDriver()
			reports := driver.Evaluate(ctx, store, schema)
			return printReports(cmd.OutOrStdout(), reports)
		},
	}
	cmd.Flags().StringP(flagShapes, "s", "", "shapes graph file")
	cmd.Flags().StringP(flagData, "d", "", "data graph file; defaults to the shapes file when both live together")
	cmd.Flags().String(flagFormat, "nquads", `quad file format to use for loading (see "shaclc formats")`)
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "elapsed time until the conformance check times out")
	viper.BindPFlag(keyCheckTimeout, cmd.Flags().Lookup("timeout"))
	return cmd
}

// NewFormatsCmd lists the quad file formats registered with the quad
// package, mirroring registerLoadFlags' use of quad.Formats() to build
// its flag usage string.
func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported quad file formats.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			for _, f := range quad.Formats() {
				if f.Reader != nil {
					names = append(names, f.Name)
				}
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func loadQuads(path, format string) ([]quad.Quad, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shaclc: opening %q: %w", path, err)
	}
	defer f.Close()

	fm := quad.FormatByName(format)
	if fm == nil {
		fm = quad.FormatByExt(extOf(path))
	}
	if fm == nil || fm.Reader == nil {
		return nil, fmt.Errorf("shaclc: unknown quad format %q", format)
	}

	r := fm.Reader(f)
	defer r.Close()

	var out []quad.Quad
	for {
		q, err := r.ReadQuad()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("shaclc: reading %q: %w", path, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

func printReports(w io.Writer, reports map[quad.Value]*conformance.Report) error {
	var names []string
	byName := make(map[string]quad.Value, len(reports))
	for name := range reports {
		names = append(names, name.String())
		byName[name.String()] = name
	}
	sort.Strings(names)

	conforms := true
	for _, name := range names {
		report := reports[byName[name]]
		if report.Err != nil {
			conforms = false
			fmt.Fprintf(w, "%s: error: %v\n", name, report.Err)
			continue
		}
		if len(report.Violating) > 0 {
			conforms = false
		}
		fmt.Fprintf(w, "%s: %d conforming, %d violating\n", name, len(report.Conforming), len(report.Violating))
		for v := range report.Violating {
			fmt.Fprintf(w, "  violates: %s\n", v.String())
		}
	}
	if !conforms {
		return errNonConformant
	}
	return nil
}
