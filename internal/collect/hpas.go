package collect

import (
	"context"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"k8s-readiness-gate/internal/model"
)

// HPAs records autoscalers targeting the service's deployments.
func HPAs(ctx context.Context, cs kubernetes.Interface, namespace, service string, st *model.ClusterState) error {
	list, err := cs.AutoscalingV2().HorizontalPodAutoscalers(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return err
	}
	for _, hpa := range list.Items {
		ref := hpa.Spec.ScaleTargetRef
		if ref.Name != service && !strings.HasPrefix(ref.Name, service+"-") {
			continue
		}
		minRep := int32(1)
		if hpa.Spec.MinReplicas != nil {
			minRep = *hpa.Spec.MinReplicas
		}
		st.HPAs = append(st.HPAs, model.HPA{
			Name:        hpa.Name,
			Target:      fmt.Sprintf("%s/%s", ref.Kind, ref.Name),
			MinReplicas: minRep,
			MaxReplicas: hpa.Spec.MaxReplicas,
			Current:     hpa.Status.CurrentReplicas,
		})
	}
	return nil
}
