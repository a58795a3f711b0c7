package render

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/example/keepstack-chart/pkg/naming"
)

// APIDeployment renders the HTTP API deployment. The API serves traffic on
// the configured port and exposes /healthz for both probes.
func APIDeployment(state *State) *appsv1.Deployment {
	port := state.Values.API.Port

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      naming.WithSuffix(state.FullName(), RoleAPI),
			Namespace: state.Namespace(),
			Labels:    state.Labels(RoleAPI),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(state.Values.API.Replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: state.SelectorLabels(RoleAPI),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: state.SelectorLabels(RoleAPI),
				},
				Spec: corev1.PodSpec{
					ServiceAccountName: state.APIServiceAccountName(),
					Containers: []corev1.Container{
						{
							Name:            RoleAPI,
							Image:           state.APIImage(),
							ImagePullPolicy: corev1.PullPolicy(state.Values.Image.PullPolicy),
							Ports: []corev1.ContainerPort{
								{
									Name:          "http",
									ContainerPort: port,
									Protocol:      corev1.ProtocolTCP,
								},
							},
							Env: append(envPort(port), envFromConfig(state)...),
							LivenessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/healthz",
										Port: intstr.FromString("http"),
									},
								},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/healthz",
										Port: intstr.FromString("http"),
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// WorkerDeployment renders the ingest worker deployment. The worker exposes
// metrics and health on separate ports; the health port backs both probes.
func WorkerDeployment(state *State) *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      naming.WithSuffix(state.FullName(), RoleWorker),
			Namespace: state.Namespace(),
			Labels:    state.Labels(RoleWorker),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(state.Values.Worker.Replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: state.SelectorLabels(RoleWorker),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: state.SelectorLabels(RoleWorker),
				},
				Spec: corev1.PodSpec{
					ServiceAccountName: state.WorkerServiceAccountName(),
					Containers: []corev1.Container{
						{
							Name:            RoleWorker,
							Image:           state.WorkerImage(),
							ImagePullPolicy: corev1.PullPolicy(state.Values.Image.PullPolicy),
							Ports: []corev1.ContainerPort{
								{
									Name:          "metrics",
									ContainerPort: state.Values.Worker.MetricsPort,
									Protocol:      corev1.ProtocolTCP,
								},
								{
									Name:          "health",
									ContainerPort: state.Values.Worker.HealthPort,
									Protocol:      corev1.ProtocolTCP,
								},
							},
							Env: append([]corev1.EnvVar{
								{Name: "PORT", Value: formatPort(state.Values.Worker.MetricsPort)},
								{Name: "HEALTH_PORT", Value: formatPort(state.Values.Worker.HealthPort)},
							}, envFromConfig(state)...),
							LivenessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/healthz",
										Port: intstr.FromString("health"),
									},
								},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/healthz",
										Port: intstr.FromString("health"),
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func envPort(port int32) []corev1.EnvVar {
	return []corev1.EnvVar{
		{Name: "PORT", Value: formatPort(port)},
	}
}

// envFromConfig references the shared config map for the application
// environment (DATABASE_URL, NATS_URL, DEV_MODE).
func envFromConfig(state *State) []corev1.EnvVar {
	name := state.FullName()
	var vars []corev1.EnvVar
	for _, key := range []string{"DATABASE_URL", "NATS_URL", "DEV_MODE"} {
		vars = append(vars, corev1.EnvVar{
			Name: key,
			ValueFrom: &corev1.EnvVarSource{
				ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{
						Name: name,
					},
					Key: key,
				},
			},
		})
	}
	return vars
}
