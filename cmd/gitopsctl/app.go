package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/workingdad365/gitops-test/internal/helmutil"
	"github.com/workingdad365/gitops-test/internal/kube"
)

func appCommand(args []string) error {
	if len(args) < 1 {
		printAppUsage()
		return fmt.Errorf("no app action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "install":
		return appInstall(actionArgs)
	case "upgrade":
		return appUpgrade(actionArgs)
	case "uninstall":
		return appUninstall(actionArgs)
	case "status":
		return appStatus(actionArgs)
	case "register":
		return appRegister(actionArgs)
	case "help", "-h", "--help":
		printAppUsage()
		return nil
	default:
		printAppUsage()
		return fmt.Errorf("unknown app action: %s", action)
	}
}

func printAppUsage() {
	fmt.Fprintf(os.Stderr, `Deploy the demo chart directly or register it with Argo CD

USAGE:
    gitopsctl app <action> [flags]

ACTIONS:
    install     Deploy the demo chart with Helm (bypasses Argo CD)
    upgrade     Roll out chart or value changes to the demo release
    uninstall   Remove the Helm-deployed demo release
    status      Show the demo release status
    register    Apply the Argo CD Application manifest so the
                controller owns the deployment from then on

FLAGS (install):
    --release-name string   Helm release name (default "ip-demo")
    --namespace string      Kubernetes namespace (default "demo")
    --chart-path string     Path to the chart (default "chart/ip-demo")
    --image string          Container image override (repository:tag)
    --wait                  Wait for deployment to complete (default true)
    --timeout duration      Wait timeout (default 5m)

FLAGS (register):
    --manifest string       Application manifest (default "deploy/app.yaml")
    --namespace string      Argo CD namespace (default "argocd")

EXAMPLES:
    # Direct Helm deploy for a quick check
    gitopsctl app install --image localhost:5000/ip-demo:dev

    # The GitOps way: hand the chart to Argo CD
    gitopsctl app register
`)
}

func appInstall(args []string) error {
	fs := flag.NewFlagSet("app install", flag.ExitOnError)
	releaseName := fs.String("release-name", "ip-demo", "Helm release name")
	namespace := fs.String("namespace", "demo", "Kubernetes namespace")
	chartPath := fs.String("chart-path", "chart/ip-demo", "Path to the chart")
	image := fs.String("image", "", "Container image override (repository:tag)")
	wait := fs.Bool("wait", true, "Wait for deployment to complete")
	timeout := fs.Duration("timeout", 5*time.Minute, "Wait timeout")

	fs.Usage = printAppUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Deploying demo app (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	values := map[string]interface{}{}
	if *image != "" {
		repo, tag := helmutil.SplitImageRef(*image)
		values["image"] = map[string]interface{}{
			"repository": repo,
			"tag":        tag,
		}
	}

	rel, err := client.InstallLocal(*chartPath, helmutil.InstallOptions{
		ReleaseName:     *releaseName,
		Namespace:       *namespace,
		CreateNamespace: true,
		Wait:            *wait,
		Timeout:         *timeout,
		Values:          values,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Demo app deployed successfully (release: %s, status: %s)\n",
		rel.Name, rel.Info.Status)
	fmt.Printf("\nTo verify deployment:\n")
	fmt.Printf("  kubectl get pods -n %s -l app.kubernetes.io/instance=%s\n", *namespace, *releaseName)
	return nil
}

func appUpgrade(args []string) error {
	fs := flag.NewFlagSet("app upgrade", flag.ExitOnError)
	releaseName := fs.String("release-name", "ip-demo", "Helm release name")
	namespace := fs.String("namespace", "demo", "Kubernetes namespace")
	chartPath := fs.String("chart-path", "chart/ip-demo", "Path to the chart")
	image := fs.String("image", "", "Container image override (repository:tag)")
	wait := fs.Bool("wait", true, "Wait for rollout to complete")
	timeout := fs.Duration("timeout", 5*time.Minute, "Wait timeout")

	fs.Usage = printAppUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Upgrading demo app (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	values := map[string]interface{}{}
	if *image != "" {
		repo, tag := helmutil.SplitImageRef(*image)
		values["image"] = map[string]interface{}{
			"repository": repo,
			"tag":        tag,
		}
	}

	rel, err := client.Upgrade(*releaseName, *chartPath, helmutil.InstallOptions{
		Namespace: *namespace,
		Wait:      *wait,
		Timeout:   *timeout,
		Values:    values,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Demo app upgraded successfully (release: %s, revision: %d)\n",
		rel.Name, rel.Version)
	return nil
}

func appUninstall(args []string) error {
	fs := flag.NewFlagSet("app uninstall", flag.ExitOnError)
	releaseName := fs.String("release-name", "ip-demo", "Helm release name")
	namespace := fs.String("namespace", "demo", "Kubernetes namespace")

	fs.Usage = printAppUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Uninstalling demo app (release: %s, namespace: %s)\n", *releaseName, *namespace)

	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}

	if err := client.Uninstall(*releaseName); err != nil {
		return err
	}

	fmt.Println("✓ Demo app uninstalled successfully")
	return nil
}

func appStatus(args []string) error {
	fs := flag.NewFlagSet("app status", flag.ExitOnError)
	releaseName := fs.String("release-name", "ip-demo", "Helm release name")
	namespace := fs.String("namespace", "demo", "Kubernetes namespace")

	fs.Usage = printAppUsage
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

func appRegister(args []string) error {
	fs := flag.NewFlagSet("app register", flag.ExitOnError)
	manifestPath := fs.String("manifest", "deploy/app.yaml", "Application manifest")
	namespace := fs.String("namespace", "argocd", "Argo CD namespace")

	fs.Usage = printAppUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Registering Argo CD Application from %s\n", *manifestPath)

	manifest, err := os.ReadFile(*manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	// Reuse Helm's environment to resolve the kubeconfig.
	client, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}
	restConfig, err := client.RESTConfig()
	if err != nil {
		return fmt.Errorf("failed to resolve kubeconfig: %w", err)
	}

	applier, err := kube.NewApplier(restConfig)
	if err != nil {
		return err
	}

	if err := applier.Apply(context.Background(), manifest, *namespace); err != nil {
		return err
	}

	fmt.Println("✓ Application registered; Argo CD now reconciles the chart from Git")
	fmt.Printf("\nTo watch the sync:\n")
	fmt.Printf("  kubectl get applications -n %s -w\n", *namespace)
	return nil
}
