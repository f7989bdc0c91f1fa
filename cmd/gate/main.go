package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "Deployment validation gate for blue-green Kubernetes rollouts",
	Long: "Gate port-forwards to a deployed service, runs smoke, integration or\n" +
		"production readiness checks against it, and maps the outcome to a\n" +
		"promote/reject decision and exit code.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

var rootFlags struct {
	namespace  string
	service    string
	port       int
	localPort  int
	kubeconfig string
	baseURL    string
	outDir     string
	thresholds string
	compareTo  string
	ci         bool
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.namespace, "namespace", "n", "", "Target namespace (default from GATE_NAMESPACE, else \"default\")")
	pf.StringVar(&rootFlags.service, "service", "", "Service name (default from GATE_SERVICE, else \"demo-api\")")
	pf.IntVar(&rootFlags.port, "port", 0, "Service port to forward to (default from GATE_PORT, else 8000)")
	pf.IntVar(&rootFlags.localPort, "local-port", 0, "Local port for the forward (0 = ephemeral)")
	pf.StringVar(&rootFlags.kubeconfig, "kubeconfig", "", "Path to kubeconfig")
	pf.StringVar(&rootFlags.baseURL, "base-url", "", "Probe this URL directly instead of port-forwarding")
	pf.StringVar(&rootFlags.outDir, "out", "", "Directory for the JSON report and run history")
	pf.StringVar(&rootFlags.thresholds, "thresholds", "", "Path to a YAML thresholds file")
	pf.StringVar(&rootFlags.compareTo, "compare", "", "Path to a previous gate-report.json to diff against")
	pf.BoolVar(&rootFlags.ci, "ci", false, "CI mode (single machine-readable summary line)")

	rootCmd.AddCommand(smokeCmd)
	rootCmd.AddCommand(integrationCmd)
	rootCmd.AddCommand(readinessCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
