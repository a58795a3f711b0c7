package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/keepstack-chart/pkg/exitcodes"
	"github.com/example/keepstack-chart/pkg/log"
	"github.com/example/keepstack-chart/pkg/render"
)

// newRenderCmd creates the render command, which produces the full manifest
// stream for a release.
func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the keepstack manifests for a release",
		Long: `Render the full multi-document YAML manifest stream for a keepstack
release: service accounts, config map, migration job, deployments, service,
ingress, and the digest cron job.

Values are layered in order: embedded defaults, the chart's own values.yaml,
then any --values files (later files win).`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}

	addChartFlags(cmd)
	cmd.Flags().StringP("output-file", "o", "", "Write output to file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	src, err := sourceFromFlags(cmd)
	if err != nil {
		return err
	}

	state, err := buildState(src)
	if err != nil {
		return err
	}

	objects := render.Render(state)
	log.Debug("rendered objects", "count", len(objects))

	data, err := render.EncodeYAML(objects)
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitRenderFailed,
			Err:  fmt.Errorf("failed to encode manifests: %w", err),
		}
	}

	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get output-file flag: %w", err),
		}
	}
	return writeOutput(cmd, outputFile, data)
}
