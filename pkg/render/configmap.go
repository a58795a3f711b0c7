package render

import (
	"strconv"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConfigMap renders the shared application environment consumed by the API,
// worker, migration, and cron pods. Keys match the environment variables the
// keepstack binaries read at startup.
func ConfigMap(state *State) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      state.FullName(),
			Namespace: state.Namespace(),
			Labels:    state.Labels(""),
		},
		Data: map[string]string{
			"DATABASE_URL": state.Values.Config.DatabaseURL,
			"NATS_URL":     state.Values.Config.NATSURL,
			"DEV_MODE":     strconv.FormatBool(state.Values.Config.DevMode),
		},
	}
}
