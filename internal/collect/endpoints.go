package collect

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"k8s-readiness-gate/internal/model"
)

// Endpoints counts the ready addresses backing the service. Zero
// addresses means traffic has nowhere to go no matter what the
// deployments claim.
func Endpoints(ctx context.Context, cs kubernetes.Interface, namespace, service string, st *model.ClusterState) error {
	ep, err := cs.CoreV1().Endpoints(namespace).Get(ctx, service, metav1.GetOptions{})
	if err != nil {
		return err
	}
	addresses := 0
	for _, subset := range ep.Subsets {
		addresses += len(subset.Addresses)
	}
	st.Endpoints = model.ServiceEndpoints{
		Service:   service,
		Addresses: addresses,
	}
	return nil
}
