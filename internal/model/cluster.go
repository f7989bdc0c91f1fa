package model

// ClusterState is the inventory the collectors fill in before the
// rollout checks run. Only the fields the checks consume are kept.
type ClusterState struct {
	Deployments []Deployment
	Endpoints   ServiceEndpoints
	HPAs        []HPA
	PDBs        []PodDisruptionBudget
	CronJobs    []CronJob
	Pods        []Pod
}

// Deployment records replica state for one color of the rollout.
type Deployment struct {
	Namespace string
	Name      string
	Color     string
	Desired   int32
	Ready     int32
}

// ServiceEndpoints records how many ready addresses back the service.
type ServiceEndpoints struct {
	Service   string
	Addresses int
}

type HPA struct {
	Name        string
	Target      string
	MinReplicas int32
	MaxReplicas int32
	Current     int32
}

type PodDisruptionBudget struct {
	Name           string
	MinAvailable   string
	MaxUnavailable string
}

type CronJob struct {
	Name      string
	Schedule  string
	Suspended bool
}

type Pod struct {
	Name     string
	Phase    string
	Ready    bool
	Restarts int32
}
