package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/example/keepstack-chart/pkg/naming"
)

// APIService renders the service in front of the API deployment.
func APIService(state *State) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      naming.WithSuffix(state.FullName(), RoleAPI),
			Namespace: state.Namespace(),
			Labels:    state.Labels(RoleAPI),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceType(state.Values.API.Service.Type),
			Selector: state.SelectorLabels(RoleAPI),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       state.Values.API.Service.Port,
					TargetPort: intstr.FromString("http"),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}
