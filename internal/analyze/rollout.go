// Package analyze turns collected cluster state into check results for
// the production readiness gate.
package analyze

import (
	"fmt"

	"k8s-readiness-gate/internal/model"
)

// DefaultMinReplicas is the replica floor a production deployment must
// meet for a clean pass.
const DefaultMinReplicas = 3

// otherColor returns the inactive side of a blue-green pair.
func otherColor(active string) string {
	if active == "green" {
		return "blue"
	}
	return "green"
}

func findColor(st *model.ClusterState, color string) *model.Deployment {
	for i := range st.Deployments {
		if st.Deployments[i].Color == color {
			return &st.Deployments[i]
		}
	}
	return nil
}

// ActiveReplicas verifies the active color is fully rolled out: ready
// equals desired and meets the minimum replica floor. Equal but below
// the floor is advisory, a mismatch is a failure.
func ActiveReplicas(st *model.ClusterState, activeColor string, minReplicas int32) model.CheckResult {
	name := "active deployment replicas"

	d := findColor(st, activeColor)
	if d == nil && len(st.Deployments) == 1 {
		// Single-deployment service with no color labels.
		d = &st.Deployments[0]
	}
	if d == nil {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusFail,
			Detail: fmt.Sprintf("no deployment found for color %q", activeColor),
		}
	}
	if d.Ready != d.Desired {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusFail,
			Detail: fmt.Sprintf("%s: %d/%d replicas ready", d.Name, d.Ready, d.Desired),
		}
	}
	if d.Ready < minReplicas {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusWarn,
			Detail: fmt.Sprintf("%s: %d replicas ready but below the %d minimum", d.Name, d.Ready, minReplicas),
		}
	}
	return model.CheckResult{
		Name:   name,
		Status: model.StatusPass,
		Detail: fmt.Sprintf("%s: %d/%d replicas ready", d.Name, d.Ready, d.Desired),
	}
}

// InactiveScaledDown verifies the inactive color is scaled to zero.
// An absent inactive deployment passes (single-active case); both
// colors serving is advisory since it usually means a switch is mid-flight.
func InactiveScaledDown(st *model.ClusterState, activeColor string) model.CheckResult {
	name := "inactive deployment scaled down"
	inactive := otherColor(activeColor)

	d := findColor(st, inactive)
	if d == nil {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusPass,
			Detail: fmt.Sprintf("no %s deployment (single active deployment)", inactive),
		}
	}
	if d.Desired == 0 {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusPass,
			Detail: fmt.Sprintf("%s scaled to zero", d.Name),
		}
	}
	return model.CheckResult{
		Name:   name,
		Status: model.StatusWarn,
		Detail: fmt.Sprintf("both colors active: %s still has %d desired replica(s)", d.Name, d.Desired),
	}
}

// ServiceEndpoints verifies the service has at least one ready address.
func ServiceEndpoints(st *model.ClusterState) model.CheckResult {
	name := "service endpoints"
	if st.Endpoints.Addresses == 0 {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusFail,
			Detail: fmt.Sprintf("service %q has no ready endpoint addresses", st.Endpoints.Service),
		}
	}
	return model.CheckResult{
		Name:   name,
		Status: model.StatusPass,
		Detail: fmt.Sprintf("%d ready address(es)", st.Endpoints.Addresses),
	}
}

// DisruptionBudget checks a PDB exists. Missing budgets are advisory,
// never a failure.
func DisruptionBudget(st *model.ClusterState) model.CheckResult {
	name := "pod disruption budget"
	if len(st.PDBs) == 0 {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusWarn,
			Detail: "no PodDisruptionBudget in namespace",
		}
	}
	pdb := st.PDBs[0]
	detail := pdb.Name
	if pdb.MinAvailable != "" {
		detail = fmt.Sprintf("%s (minAvailable %s)", pdb.Name, pdb.MinAvailable)
	}
	return model.CheckResult{Name: name, Status: model.StatusPass, Detail: detail}
}

// Autoscaler checks an HPA targets the service. Advisory only.
func Autoscaler(st *model.ClusterState) model.CheckResult {
	name := "horizontal pod autoscaler"
	if len(st.HPAs) == 0 {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusWarn,
			Detail: "no HPA targets the service",
		}
	}
	hpa := st.HPAs[0]
	return model.CheckResult{
		Name:   name,
		Status: model.StatusPass,
		Detail: fmt.Sprintf("%s -> %s (min %d, max %d)", hpa.Name, hpa.Target, hpa.MinReplicas, hpa.MaxReplicas),
	}
}

// BackupJob checks an unsuspended CronJob exists. Advisory only.
func BackupJob(st *model.ClusterState) model.CheckResult {
	name := "backup cronjob"
	for _, cj := range st.CronJobs {
		if !cj.Suspended {
			return model.CheckResult{
				Name:   name,
				Status: model.StatusPass,
				Detail: fmt.Sprintf("%s (%s)", cj.Name, cj.Schedule),
			}
		}
	}
	return model.CheckResult{
		Name:   name,
		Status: model.StatusWarn,
		Detail: "no active CronJob in namespace",
	}
}

// PodRestarts flags pods restarting above the threshold. Advisory: a
// crash-looping pod will already fail the replica check.
func PodRestarts(st *model.ClusterState, threshold int32) model.CheckResult {
	name := "pod restart count"
	var worst *model.Pod
	for i := range st.Pods {
		if worst == nil || st.Pods[i].Restarts > worst.Restarts {
			worst = &st.Pods[i]
		}
	}
	if worst == nil {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusWarn,
			Detail: "no pods found for the service",
		}
	}
	if worst.Restarts > threshold {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusWarn,
			Detail: fmt.Sprintf("%s restarted %d times (threshold %d)", worst.Name, worst.Restarts, threshold),
		}
	}
	return model.CheckResult{
		Name:   name,
		Status: model.StatusPass,
		Detail: fmt.Sprintf("max %d restart(s) across %d pod(s)", worst.Restarts, len(st.Pods)),
	}
}

// LookupFailed records a failed cluster lookup. Core resources fail
// the run; advisory ones only warn.
func LookupFailed(name string, err error, advisory bool) model.CheckResult {
	status := model.StatusFail
	if advisory {
		status = model.StatusWarn
	}
	return model.CheckResult{
		Name:   name,
		Status: status,
		Detail: fmt.Sprintf("lookup failed: %v", err),
	}
}
