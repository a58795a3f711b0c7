package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/example/keepstack-chart/pkg/exitcodes"
	"github.com/example/keepstack-chart/pkg/image"
	"github.com/example/keepstack-chart/pkg/log"
	"github.com/example/keepstack-chart/pkg/naming"
	"github.com/example/keepstack-chart/pkg/render"
)

// requiredLabels are the label keys every rendered object must carry.
var requiredLabels = []string{
	naming.LabelName,
	naming.LabelInstance,
	naming.LabelVersion,
	naming.LabelManagedBy,
}

// newValidateCmd creates the validate command, which checks the rendered
// objects against Kubernetes naming and labelling rules.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the rendered objects for a release",
		Long: `Validate renders the release and checks every object: names must be
valid DNS-1123 labels of at most 63 characters with no trailing hyphen, the
standard label set must be present, the namespace must resolve, and the
container image references must parse.

Long release names and verbatim name overrides are the usual sources of
violations.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	addChartFlags(cmd)

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	src, err := sourceFromFlags(cmd)
	if err != nil {
		return err
	}

	state, err := buildState(src)
	if err != nil {
		return err
	}

	if err := validateImages(state); err != nil {
		return err
	}

	objects := render.Render(state)
	problems := validateObjects(state, objects)
	if len(problems) > 0 {
		for _, problem := range problems {
			log.Error("validation problem", "problem", problem)
		}
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitValidationFailed,
			Err:  fmt.Errorf("%d validation problem(s) found", len(problems)),
		}
	}

	log.Info("validation succeeded", "objects", len(objects))
	fmt.Fprintf(cmd.OutOrStdout(), "Validation succeeded: %d objects checked\n", len(objects))
	return nil
}

// validateImages parses the release's image references. A reference that
// does not parse would produce pods no kubelet can pull.
func validateImages(state *render.State) error {
	for role, ref := range map[string]string{
		render.RoleAPI:    state.APIImage(),
		render.RoleWorker: state.WorkerImage(),
	} {
		parsed, err := image.ParseImageReference(ref)
		if err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitImageReferenceError,
				Err:  fmt.Errorf("%s image %q: %w", role, ref, err),
			}
		}
		image.NormalizeImageReference(parsed)
		log.Debug("image reference parsed",
			"role", role,
			"registry", parsed.Registry,
			"repository", parsed.Repository,
			"tag", parsed.Tag,
			"canonical", parsed.String())
	}
	return nil
}

// validateObjects checks names, namespaces, and labels across the rendered
// object set and returns one message per violation.
func validateObjects(state *render.State, objects []runtime.Object) []string {
	var problems []string

	if state.Namespace() == "" {
		problems = append(problems, "resolved namespace is empty")
	}

	for _, obj := range objects {
		accessor, ok := obj.(metav1.Object)
		if !ok {
			problems = append(problems, fmt.Sprintf("%T does not expose object metadata", obj))
			continue
		}
		kind := obj.GetObjectKind().GroupVersionKind().Kind
		name := accessor.GetName()

		problems = append(problems, validateName(kind, name)...)

		labels := accessor.GetLabels()
		for _, key := range requiredLabels {
			if labels[key] == "" {
				problems = append(problems, fmt.Sprintf("%s %s: missing required label %s", kind, name, key))
			}
		}
	}

	return problems
}

// validateName checks a single resource name against the DNS-1123 label
// rules all keepstack names must satisfy.
func validateName(kind, name string) []string {
	var problems []string
	if name == "" {
		return []string{fmt.Sprintf("%s: empty name", kind)}
	}
	if len(name) > naming.MaxNameLength {
		problems = append(problems, fmt.Sprintf("%s %s: name is %d characters, limit is %d", kind, name, len(name), naming.MaxNameLength))
	}
	if strings.HasSuffix(name, "-") {
		problems = append(problems, fmt.Sprintf("%s %s: name ends with a hyphen", kind, name))
	}
	if len(problems) > 0 {
		return problems
	}
	for _, msg := range validation.IsDNS1123Label(name) {
		problems = append(problems, fmt.Sprintf("%s %s: %s", kind, name, msg))
	}
	return problems
}
