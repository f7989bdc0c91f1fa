package collect

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"k8s-readiness-gate/internal/model"
)

// PodDisruptionBudgets records PDBs in the target namespace.
func PodDisruptionBudgets(ctx context.Context, cs kubernetes.Interface, namespace string, st *model.ClusterState) error {
	list, err := cs.PolicyV1().PodDisruptionBudgets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return err
	}
	for _, pdb := range list.Items {
		minAvail := ""
		if pdb.Spec.MinAvailable != nil {
			minAvail = pdb.Spec.MinAvailable.String()
		}
		maxUnavail := ""
		if pdb.Spec.MaxUnavailable != nil {
			maxUnavail = pdb.Spec.MaxUnavailable.String()
		}
		st.PDBs = append(st.PDBs, model.PodDisruptionBudget{
			Name:           pdb.Name,
			MinAvailable:   minAvail,
			MaxUnavailable: maxUnavail,
		})
	}
	return nil
}
