package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/workingdad365/gitops-test/internal/helmutil"
	"github.com/workingdad365/gitops-test/internal/kube"
)

func smokeCommand(args []string) error {
	if len(args) < 1 {
		printSmokeUsage()
		return fmt.Errorf("no smoke action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "run":
		return smokeRun(actionArgs)
	case "help", "-h", "--help":
		printSmokeUsage()
		return nil
	default:
		printSmokeUsage()
		return fmt.Errorf("unknown smoke action: %s", action)
	}
}

func printSmokeUsage() {
	fmt.Fprintf(os.Stderr, `Run an in-cluster smoke test against the deployed service

A throwaway curl pod is created next to the service; its output must
contain the expected response fragment.

USAGE:
    gitopsctl smoke run [flags]

FLAGS:
    --namespace string   Kubernetes namespace (default "demo")
    --url string         URL the test pod requests
                         (default "http://ip-demo/ip")
    --expect string      Substring the response must contain (default "\"ip\"")
    --timeout duration   Wait timeout (default 60s)
    --no-cleanup         Keep the test pod for debugging

EXAMPLES:
    gitopsctl smoke run --namespace demo
    gitopsctl smoke run --url http://ip-demo/sayhello --expect Hello
`)
}

func smokeRun(args []string) error {
	fs := flag.NewFlagSet("smoke run", flag.ExitOnError)
	namespace := fs.String("namespace", "demo", "Kubernetes namespace")
	url := fs.String("url", "http://ip-demo/ip", "URL the test pod requests")
	expect := fs.String("expect", `"ip"`, "Substring the response must contain")
	timeout := fs.Duration("timeout", 60*time.Second, "Wait timeout")
	noCleanup := fs.Bool("no-cleanup", false, "Keep the test pod for debugging")

	fs.Usage = printSmokeUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Running smoke test...")

	helmClient, err := helmutil.NewClient(*namespace)
	if err != nil {
		return err
	}
	restConfig, err := helmClient.RESTConfig()
	if err != nil {
		return fmt.Errorf("failed to resolve kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	ctx := context.Background()
	logs, err := kube.RunSmokeTest(ctx, clientset, kube.SmokeOptions{
		Namespace: *namespace,
		URL:       *url,
		Expect:    *expect,
		Timeout:   *timeout,
	})

	if logs != "" {
		fmt.Println("Test pod output:")
		for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
			fmt.Printf("  %s\n", line)
		}
	}

	if !*noCleanup {
		if cleanupErr := kube.CleanupSmokeTest(ctx, clientset, *namespace); cleanupErr != nil {
			fmt.Printf("⚠ Warning: cleanup failed: %v\n", cleanupErr)
		}
	}

	if err != nil {
		fmt.Println("❌ Smoke test failed")
		return err
	}

	fmt.Println("✓ Smoke test passed")
	return nil
}
