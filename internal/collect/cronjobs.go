package collect

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"k8s-readiness-gate/internal/model"
)

// CronJobs records scheduled jobs in the target namespace, used to
// verify a backup job exists before production sign-off.
func CronJobs(ctx context.Context, cs kubernetes.Interface, namespace string, st *model.ClusterState) error {
	list, err := cs.BatchV1().CronJobs(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return err
	}
	for _, cj := range list.Items {
		suspended := cj.Spec.Suspend != nil && *cj.Spec.Suspend
		st.CronJobs = append(st.CronJobs, model.CronJob{
			Name:      cj.Name,
			Schedule:  cj.Spec.Schedule,
			Suspended: suspended,
		})
	}
	return nil
}
