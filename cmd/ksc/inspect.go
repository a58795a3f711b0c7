package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/example/keepstack-chart/pkg/exitcodes"
	"github.com/example/keepstack-chart/pkg/naming"
	"github.com/example/keepstack-chart/pkg/render"
)

// inspectReport is the inspect command's output document.
type inspectReport struct {
	Chart   chartSection      `json:"chart"`
	Release releaseSection    `json:"release"`
	Names   namesSection      `json:"names"`
	Labels  map[string]string `json:"labels"`
	Images  imagesSection     `json:"images"`
}

type chartSection struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	AppVersion string `json:"appVersion,omitempty"`
}

type releaseSection struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// namesSection lists every resource name the release would create. Derived
// names share the full name prefix; overrides appear verbatim.
type namesSection struct {
	FullName             string `json:"fullName"`
	ConfigMap            string `json:"configMap"`
	APIDeployment        string `json:"apiDeployment"`
	APIService           string `json:"apiService"`
	WorkerDeployment     string `json:"workerDeployment"`
	MigrateJob           string `json:"migrateJob"`
	DigestCronJob        string `json:"digestCronJob"`
	APIServiceAccount    string `json:"apiServiceAccount"`
	WorkerServiceAccount string `json:"workerServiceAccount"`
}

type imagesSection struct {
	API    string `json:"api"`
	Worker string `json:"worker"`
}

// newInspectCmd creates the inspect command, which reports the resolved
// names, labels, and images for a release without rendering full manifests.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report the resolved names, labels, and images for a release",
		Long: `Inspect resolves the release's full name, every derived resource name,
the standard label set, and the container image references, and prints them
as a single document. Useful for checking what a values change does to the
installation before rendering it.`,
		Args: cobra.NoArgs,
		RunE: runInspect,
	}

	addChartFlags(cmd)
	cmd.Flags().StringP("output-file", "o", "", "Write output to file instead of stdout")
	cmd.Flags().String("output-format", DefaultOutputFormat, "Output format (yaml or json)")

	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	src, err := sourceFromFlags(cmd)
	if err != nil {
		return err
	}

	state, err := buildState(src)
	if err != nil {
		return err
	}

	report := buildInspectReport(state)

	outputFormat, err := cmd.Flags().GetString("output-format")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get output-format flag: %w", err),
		}
	}

	var data []byte
	switch outputFormat {
	case "yaml":
		data, err = yaml.Marshal(report)
	case "json":
		data, err = json.MarshalIndent(report, "", "  ")
		data = append(data, '\n')
	default:
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("unsupported output format %q (expected yaml or json)", outputFormat),
		}
	}
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInternalError,
			Err:  fmt.Errorf("failed to encode inspect report: %w", err),
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

func buildInspectReport(state *render.State) *inspectReport {
	fullName := state.FullName()
	return &inspectReport{
		Chart: chartSection{
			Name:       state.Chart.Name,
			Version:    state.Chart.Version,
			AppVersion: state.Chart.AppVersion,
		},
		Release: releaseSection{
			Name:      state.ReleaseName,
			Namespace: state.Namespace(),
		},
		Names: namesSection{
			FullName:             fullName,
			ConfigMap:            fullName,
			APIDeployment:        naming.WithSuffix(fullName, render.RoleAPI),
			APIService:           naming.WithSuffix(fullName, render.RoleAPI),
			WorkerDeployment:     naming.WithSuffix(fullName, render.RoleWorker),
			MigrateJob:           state.MigrateJobName(),
			DigestCronJob:        naming.WithSuffix(fullName, render.RoleDigest),
			APIServiceAccount:    state.APIServiceAccountName(),
			WorkerServiceAccount: state.WorkerServiceAccountName(),
		},
		Labels: state.Labels(""),
		Images: imagesSection{
			API:    state.APIImage(),
			Worker: state.WorkerImage(),
		},
	}
}
