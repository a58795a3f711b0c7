package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// APIServiceAccount renders the API role's service account, or nil when the
// values disable its creation (an override name pointing at a pre-existing
// account is the usual reason).
func APIServiceAccount(state *State) *corev1.ServiceAccount {
	if !state.Values.ServiceAccounts.API.Create {
		return nil
	}
	return serviceAccount(state, RoleAPI, state.APIServiceAccountName())
}

// WorkerServiceAccount renders the worker role's service account, or nil when
// creation is disabled.
func WorkerServiceAccount(state *State) *corev1.ServiceAccount {
	if !state.Values.ServiceAccounts.Worker.Create {
		return nil
	}
	return serviceAccount(state, RoleWorker, state.WorkerServiceAccountName())
}

func serviceAccount(state *State, role, name string) *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ServiceAccount",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: state.Namespace(),
			Labels:    state.Labels(role),
		},
	}
}
