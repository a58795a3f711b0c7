package render

import (
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

// MigrateJob renders the schema migration job. It runs as a helm
// pre-install/pre-upgrade hook so the schema is current before the API and
// worker pods roll.
func MigrateJob(state *State) *batchv1.Job {
	return &batchv1.Job{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "batch/v1",
			Kind:       "Job",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      state.MigrateJobName(),
			Namespace: state.Namespace(),
			Labels:    state.Labels(RoleMigrate),
			Annotations: map[string]string{
				"helm.sh/hook":               "pre-install,pre-upgrade",
				"helm.sh/hook-weight":        "0",
				"helm.sh/hook-delete-policy": "before-hook-creation,hook-succeeded",
			},
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: ptr.To(int32(3)),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: state.SelectorLabels(RoleMigrate),
				},
				Spec: corev1.PodSpec{
					RestartPolicy:      corev1.RestartPolicyNever,
					ServiceAccountName: state.APIServiceAccountName(),
					Containers: []corev1.Container{
						{
							Name:            RoleMigrate,
							Image:           state.APIImage(),
							ImagePullPolicy: corev1.PullPolicy(state.Values.Image.PullPolicy),
							Command:         []string{"/app/migrate"},
							Env: append([]corev1.EnvVar{
								{Name: "MIGRATIONS_DIR", Value: state.Values.Migrate.MigrationsDir},
							}, envFromConfig(state)...),
						},
					},
				},
			},
		},
	}
}
