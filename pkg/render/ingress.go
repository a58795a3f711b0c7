package render

import (
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/example/keepstack-chart/pkg/naming"
)

// APIIngress renders external access to the API service, or nil when
// disabled in the values.
func APIIngress(state *State) *networkingv1.Ingress {
	if !state.Values.API.Ingress.Enabled {
		return nil
	}

	var className *string
	if state.Values.API.Ingress.ClassName != "" {
		className = ptr.To(state.Values.API.Ingress.ClassName)
	}

	pathType := networkingv1.PathTypePrefix

	return &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "Ingress",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        naming.WithSuffix(state.FullName(), RoleAPI),
			Namespace:   state.Namespace(),
			Labels:      state.Labels(RoleAPI),
			Annotations: state.Values.API.Ingress.Annotations,
		},
		Spec: networkingv1.IngressSpec{
			IngressClassName: className,
			Rules: []networkingv1.IngressRule{
				{
					Host: state.Values.API.Ingress.Host,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: &pathType,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: naming.WithSuffix(state.FullName(), RoleAPI),
											Port: networkingv1.ServiceBackendPort{
												Name: "http",
											},
										},
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
