package analyze

import (
	"errors"
	"testing"

	"k8s-readiness-gate/internal/model"
)

func TestActiveReplicas(t *testing.T) {
	st := &model.ClusterState{Deployments: []model.Deployment{
		{Name: "demo-api-blue", Color: "blue", Desired: 3, Ready: 3},
		{Name: "demo-api-green", Color: "green", Desired: 0, Ready: 0},
	}}

	if got := ActiveReplicas(st, "blue", 3); got.Status != model.StatusPass {
		t.Errorf("3/3 ready at floor 3 = %s (%s), want PASS", got.Status, got.Detail)
	}

	// Ready equals desired but below the floor: advisory.
	st.Deployments[0].Desired = 2
	st.Deployments[0].Ready = 2
	if got := ActiveReplicas(st, "blue", 3); got.Status != model.StatusWarn {
		t.Errorf("2/2 ready at floor 3 = %s, want WARN", got.Status)
	}

	// Mismatch fails.
	st.Deployments[0].Desired = 3
	if got := ActiveReplicas(st, "blue", 3); got.Status != model.StatusFail {
		t.Errorf("2/3 ready = %s, want FAIL", got.Status)
	}
}

func TestActiveReplicasMissingColor(t *testing.T) {
	st := &model.ClusterState{}
	if got := ActiveReplicas(st, "blue", 3); got.Status != model.StatusFail {
		t.Errorf("no deployments = %s, want FAIL", got.Status)
	}

	// A sole uncolored deployment is treated as the active one.
	st.Deployments = []model.Deployment{{Name: "demo-api", Desired: 3, Ready: 3}}
	if got := ActiveReplicas(st, "blue", 3); got.Status != model.StatusPass {
		t.Errorf("single uncolored deployment = %s (%s), want PASS", got.Status, got.Detail)
	}
}

func TestInactiveScaledDown(t *testing.T) {
	st := &model.ClusterState{Deployments: []model.Deployment{
		{Name: "demo-api-blue", Color: "blue", Desired: 3, Ready: 3},
		{Name: "demo-api-green", Color: "green", Desired: 0, Ready: 0},
	}}
	if got := InactiveScaledDown(st, "blue"); got.Status != model.StatusPass {
		t.Errorf("green at zero = %s, want PASS", got.Status)
	}

	// Both colors serving: advisory, usually a switch mid-flight.
	st.Deployments[1].Desired = 2
	if got := InactiveScaledDown(st, "blue"); got.Status != model.StatusWarn {
		t.Errorf("both colors active = %s, want WARN", got.Status)
	}

	// Absent inactive deployment passes (single-active case).
	st.Deployments = st.Deployments[:1]
	if got := InactiveScaledDown(st, "blue"); got.Status != model.StatusPass {
		t.Errorf("no green deployment = %s, want PASS", got.Status)
	}
}

func TestServiceEndpoints(t *testing.T) {
	st := &model.ClusterState{Endpoints: model.ServiceEndpoints{Service: "demo-api", Addresses: 3}}
	if got := ServiceEndpoints(st); got.Status != model.StatusPass {
		t.Errorf("3 addresses = %s, want PASS", got.Status)
	}

	st.Endpoints.Addresses = 0
	if got := ServiceEndpoints(st); got.Status != model.StatusFail {
		t.Errorf("0 addresses = %s, want FAIL", got.Status)
	}
}

func TestAdvisoryChecksNeverFail(t *testing.T) {
	st := &model.ClusterState{}

	for name, got := range map[string]model.CheckResult{
		"pdb":      DisruptionBudget(st),
		"hpa":      Autoscaler(st),
		"backup":   BackupJob(st),
		"restarts": PodRestarts(st, 5),
	} {
		if got.Status != model.StatusWarn {
			t.Errorf("%s on empty state = %s, want WARN", name, got.Status)
		}
	}
}

func TestBackupJobIgnoresSuspended(t *testing.T) {
	st := &model.ClusterState{CronJobs: []model.CronJob{
		{Name: "db-backup", Schedule: "0 2 * * *", Suspended: true},
	}}
	if got := BackupJob(st); got.Status != model.StatusWarn {
		t.Errorf("suspended cronjob = %s, want WARN", got.Status)
	}

	st.CronJobs = append(st.CronJobs, model.CronJob{Name: "db-backup-v2", Schedule: "0 3 * * *"})
	if got := BackupJob(st); got.Status != model.StatusPass {
		t.Errorf("active cronjob = %s, want PASS", got.Status)
	}
}

func TestPodRestarts(t *testing.T) {
	st := &model.ClusterState{Pods: []model.Pod{
		{Name: "demo-api-blue-abc", Restarts: 0},
		{Name: "demo-api-blue-def", Restarts: 7},
	}}
	got := PodRestarts(st, 5)
	if got.Status != model.StatusWarn {
		t.Errorf("7 restarts over threshold 5 = %s, want WARN", got.Status)
	}

	got = PodRestarts(st, 10)
	if got.Status != model.StatusPass {
		t.Errorf("7 restarts under threshold 10 = %s, want PASS", got.Status)
	}
}

func TestLookupFailed(t *testing.T) {
	err := errors.New("forbidden")
	if got := LookupFailed("service endpoints", err, false); got.Status != model.StatusFail {
		t.Errorf("core lookup failure = %s, want FAIL", got.Status)
	}
	if got := LookupFailed("pod disruption budget", err, true); got.Status != model.StatusWarn {
		t.Errorf("advisory lookup failure = %s, want WARN", got.Status)
	}
}
