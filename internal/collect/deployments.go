package collect

import (
	"context"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"k8s-readiness-gate/internal/model"
)

// Deployments records replica state for the service's deployments.
// Blue-green rollouts name them "<service>-blue" and "<service>-green";
// a single-deployment service matches the bare service name. The color
// comes from the "color" label when present, otherwise from the name
// suffix.
func Deployments(ctx context.Context, cs kubernetes.Interface, namespace, service string, st *model.ClusterState) error {
	list, err := cs.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return err
	}
	for _, d := range list.Items {
		if d.Name != service && !strings.HasPrefix(d.Name, service+"-") {
			continue
		}
		color := d.Labels["color"]
		if color == "" {
			color = strings.TrimPrefix(strings.TrimPrefix(d.Name, service), "-")
		}
		desired := int32(1)
		if d.Spec.Replicas != nil {
			desired = *d.Spec.Replicas
		}
		st.Deployments = append(st.Deployments, model.Deployment{
			Namespace: d.Namespace,
			Name:      d.Name,
			Color:     color,
			Desired:   desired,
			Ready:     d.Status.ReadyReplicas,
		})
	}
	return nil
}
