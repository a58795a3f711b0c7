package render

import (
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/example/keepstack-chart/pkg/naming"
)

// DigestCronJob renders the scheduled digest dispatch. It reuses the API
// image: the digest run is a subcommand of the cron entrypoint shipped with
// the API binaries.
func DigestCronJob(state *State) *batchv1.CronJob {
	return &batchv1.CronJob{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "batch/v1",
			Kind:       "CronJob",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      naming.WithSuffix(state.FullName(), RoleDigest),
			Namespace: state.Namespace(),
			Labels:    state.Labels(RoleDigest),
		},
		Spec: batchv1.CronJobSpec{
			Schedule:          state.Values.Cron.Schedule,
			Suspend:           ptr.To(state.Values.Cron.Suspend),
			ConcurrencyPolicy: batchv1.ForbidConcurrent,
			JobTemplate: batchv1.JobTemplateSpec{
				Spec: batchv1.JobSpec{
					BackoffLimit: ptr.To(int32(1)),
					Template: corev1.PodTemplateSpec{
						ObjectMeta: metav1.ObjectMeta{
							Labels: state.SelectorLabels(RoleDigest),
						},
						Spec: corev1.PodSpec{
							RestartPolicy:      corev1.RestartPolicyNever,
							ServiceAccountName: state.APIServiceAccountName(),
							Containers: []corev1.Container{
								{
									Name:            RoleDigest,
									Image:           state.APIImage(),
									ImagePullPolicy: corev1.PullPolicy(state.Values.Image.PullPolicy),
									Command:         []string{"/app/cron", "digest"},
									Env:             envFromConfig(state),
								},
							},
						},
					},
				},
			},
		},
	}
}
