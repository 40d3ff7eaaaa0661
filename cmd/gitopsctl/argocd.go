package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/workingdad365/gitops-test/internal/helmutil"
)

const (
	argoRepoName = "argo"
	argoRepoURL  = "https://argoproj.github.io/argo-helm"
	argoChartRef = "argo/argo-cd"
)

func argocdCommand(args []string) error {
	if len(args) < 1 {
		printArgocdUsage()
		return fmt.Errorf("no argocd action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "install":
		return argocdInstall(actionArgs)
	case "uninstall":
		return argocdUninstall(actionArgs)
	case "status":
		return argocdStatus(actionArgs)
	case "help", "-h", "--help":
		printArgocdUsage()
		return nil
	default:
		printArgocdUsage()
		return fmt.Errorf("unknown argocd action: %s", action)
	}
}

func printArgocdUsage() {
	fmt.Fprintf(os.Stderr, `Install and manage the Argo CD controller via Helm

USAGE:
    gitopsctl argocd <action> [flags]

ACTIONS:
    install     Install Argo CD from the argo-helm repository
    uninstall   Uninstall the Argo CD release
    status      Show the Argo CD release status

FLAGS (install):
    --release-name string   Helm release name (default "argocd")
    --namespace string      Kubernetes namespace (default "argocd")
    --wait                  Wait for deployment to complete (default true)
    --timeout duration      Wait timeout (default 5m)

EXAMPLES:
    # Install with defaults
    gitopsctl argocd install

    # Check status
    gitopsctl argocd status

    # Uninstall
    gitopsctl argocd uninstall
`)
}

func argocdInstall(args []string) error {
	fs := flag.NewFlagSet("argocd install", flag.ExitOnError)
	releaseName := fs.String("release-name", "argocd", "Helm release name")
	namespace := fs.String("namespace", "argocd", "Kubernetes namespace")
	wait := fs.Bool("wait", true, "Wait for deployment to complete")
	timeout := fs.Duration("timeout", 5*time.Minute, "Wait timeout")

	fs.Usage = printArgocdUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Installing Argo CD (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	fmt.Println("Adding Argo Helm repository...")
	if err := client.AddRepo(argoRepoName, argoRepoURL); err != nil {
		return err
	}
	fmt.Printf("✓ Repository '%s' added: %s\n", argoRepoName, argoRepoURL)

	rel, err := client.InstallFromRepo(argoChartRef, helmutil.InstallOptions{
		ReleaseName:     *releaseName,
		Namespace:       *namespace,
		CreateNamespace: true,
		Wait:            *wait,
		Timeout:         *timeout,
		Values: map[string]interface{}{
			// The tutorial environment has no load balancer; the UI is
			// reached with kubectl port-forward.
			"server": map[string]interface{}{
				"service": map[string]interface{}{
					"type": "ClusterIP",
				},
			},
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Argo CD installed successfully (release: %s, status: %s)\n",
		rel.Name, rel.Info.Status)
	fmt.Printf("\nTo access the UI:\n")
	fmt.Printf("  kubectl port-forward -n %s svc/%s-server 8081:443\n", *namespace, *releaseName)
	return nil
}

func argocdUninstall(args []string) error {
	fs := flag.NewFlagSet("argocd uninstall", flag.ExitOnError)
	releaseName := fs.String("release-name", "argocd", "Helm release name")
	namespace := fs.String("namespace", "argocd", "Kubernetes namespace")

	fs.Usage = printArgocdUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Uninstalling Argo CD (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	if err := client.Uninstall(*releaseName); err != nil {
		return err
	}

	fmt.Println("✓ Argo CD uninstalled successfully")
	return nil
}

func argocdStatus(args []string) error {
	fs := flag.NewFlagSet("argocd status", flag.ExitOnError)
	releaseName := fs.String("release-name", "argocd", "Helm release name")
	namespace := fs.String("namespace", "argocd", "Kubernetes namespace")

	fs.Usage = printArgocdUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	rel, err := client.Status(*releaseName)
	if err != nil {
		return err
	}

	printReleaseStatus(rel.Name, rel.Namespace, string(rel.Info.Status), rel.Version, rel.Info.LastDeployed.Time)
	return nil
}
