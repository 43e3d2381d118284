package command

import (
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/shaclc/clog"
	"github.com/cayleygraph/shaclc/conformance/httpapi"
	"github.com/cayleygraph/shaclc/graph/graphmock"
)

const keyServeTimeout = "serve.timeout"

// NewServeCmd builds the "serve" subcommand: load a shapes (+ data)
// graph once, then serve POST /conformance over HTTP, the same
// "load, then listen" shape command/http.go's NewHttpCmd follows.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load a shapes graph and serve conformance checks over HTTP.",
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

			store := graphmock.New(quads)
			api := httpapi.New(store)
			api.SetTimeout(viper.GetDuration(keyServeTimeout))

			host, _ := cmd.Flags().GetString("host")
			phost := host
			if h, port, err := net.SplitHostPort(host); err == nil && h == "" {
				phost = net.JoinHostPort("localhost", port)
			}
			clog.Infof("listening on %s, POST /conformance at http://%s/conformance", host, phost)
			return http.ListenAndServe(host, api)
		},
	}
	cmd.Flags().StringP(flagShapes, "s", "", "shapes graph file")
	cmd.Flags().StringP(flagData, "d", "", "data graph file; defaults to the shapes file when both live together")
	cmd.Flags().String(flagFormat, "nquads", `quad file format to use for loading (see "shaclc formats")`)
	cmd.Flags().String("host", "127.0.0.1:64210", "host:port to listen on")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "elapsed time until an individual request times out")
	viper.BindPFlag(keyServeTimeout, cmd.Flags().Lookup("timeout"))
	return cmd
}
