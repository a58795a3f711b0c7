package render

import (
	"bytes"
	"fmt"
	"reflect"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"
)

// Render builds every object of a keepstack installation. Objects whose
// creation is disabled in the values (service accounts with create: false,
// a disabled ingress) are omitted from the result.
func Render(state *State) []runtime.Object {
	candidates := []runtime.Object{
		APIServiceAccount(state),
		WorkerServiceAccount(state),
		ConfigMap(state),
		MigrateJob(state),
		APIDeployment(state),
		WorkerDeployment(state),
		APIService(state),
		APIIngress(state),
		DigestCronJob(state),
	}

	var objects []runtime.Object
	for _, obj := range candidates {
		if isNil(obj) {
			continue
		}
		objects = append(objects, obj)
	}
	return objects
}

// EncodeYAML renders the objects as a multi-document YAML stream in the
// order produced by Render.
func EncodeYAML(objects []runtime.Object) ([]byte, error) {
	var buf bytes.Buffer
	for _, obj := range objects {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("marshal %T: %w", obj, err)
		}
		buf.WriteString("---\n")
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// isNil reports whether obj is a nil interface or a typed nil pointer. The
// per-object constructors return typed nils for disabled objects, which a
// plain comparison against nil would miss.
func isNil(obj runtime.Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func formatPort(port int32) string {
	return fmt.Sprintf("%d", port)
}
