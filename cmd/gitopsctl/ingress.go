package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/workingdad365/gitops-test/internal/helmutil"
)

const (
	ingressRepoName = "ingress-nginx"
	ingressRepoURL  = "https://kubernetes.github.io/ingress-nginx"
	ingressChartRef = "ingress-nginx/ingress-nginx"
)

func ingressCommand(args []string) error {
	if len(args) < 1 {
		printIngressUsage()
		return fmt.Errorf("no ingress action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "install":
		return ingressInstall(actionArgs)
	case "uninstall":
		return ingressUninstall(actionArgs)
	case "status":
		return ingressStatus(actionArgs)
	case "help", "-h", "--help":
		printIngressUsage()
		return nil
	default:
		printIngressUsage()
		return fmt.Errorf("unknown ingress action: %s", action)
	}
}

func printIngressUsage() {
	fmt.Fprintf(os.Stderr, `Install and manage the ingress-nginx controller via Helm

USAGE:
    gitopsctl ingress <action> [flags]

ACTIONS:
    install     Install ingress-nginx
    uninstall   Uninstall the ingress-nginx release
    status      Show the ingress-nginx release status

FLAGS (install):
    --release-name string   Helm release name (default "ingress-nginx")
    --namespace string      Kubernetes namespace (default "ingress-nginx")
    --wait                  Wait for deployment to complete (default true)
    --timeout duration      Wait timeout (default 5m)

EXAMPLES:
    gitopsctl ingress install
    gitopsctl ingress status
    gitopsctl ingress uninstall
`)
}

func ingressInstall(args []string) error {
	fs := flag.NewFlagSet("ingress install", flag.ExitOnError)
	releaseName := fs.String("release-name", "ingress-nginx", "Helm release name")
	namespace := fs.String("namespace", "ingress-nginx", "Kubernetes namespace")
	wait := fs.Bool("wait", true, "Wait for deployment to complete")
	timeout := fs.Duration("timeout", 5*time.Minute, "Wait timeout")

	fs.Usage = printIngressUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Installing ingress-nginx (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	fmt.Println("Adding ingress-nginx Helm repository...")
	if err := client.AddRepo(ingressRepoName, ingressRepoURL); err != nil {
		return err
	}
	fmt.Printf("✓ Repository '%s' added: %s\n", ingressRepoName, ingressRepoURL)

	rel, err := client.InstallFromRepo(ingressChartRef, helmutil.InstallOptions{
		ReleaseName:     *releaseName,
		Namespace:       *namespace,
		CreateNamespace: true,
		Wait:            *wait,
		Timeout:         *timeout,
		Values: map[string]interface{}{
			// Kind has no cloud load balancer; expose the controller on
			// the node's ports so the host can reach it.
			"controller": map[string]interface{}{
				"service": map[string]interface{}{
					"type": "NodePort",
				},
				"hostPort": map[string]interface{}{
					"enabled": true,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ ingress-nginx installed successfully (release: %s, status: %s)\n",
		rel.Name, rel.Info.Status)
	return nil
}

func ingressUninstall(args []string) error {
	fs := flag.NewFlagSet("ingress uninstall", flag.ExitOnError)
	releaseName := fs.String("release-name", "ingress-nginx", "Helm release name")
	namespace := fs.String("namespace", "ingress-nginx", "Kubernetes namespace")

	fs.Usage = printIngressUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Uninstalling ingress-nginx (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	if err := client.Uninstall(*releaseName); err != nil {
		return err
	}

	fmt.Println("✓ ingress-nginx uninstalled successfully")
	return nil
}

func ingressStatus(args []string) error {
	fs := flag.NewFlagSet("ingress status", flag.ExitOnError)
	releaseName := fs.String("release-name", "ingress-nginx", "Helm release name")
	namespace := fs.String("namespace", "ingress-nginx", "Kubernetes namespace")

	fs.Usage = printIngressUsage
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
