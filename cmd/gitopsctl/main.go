// gitopsctl automates the manual steps of the GitOps tutorial: local
// cluster lifecycle, controller installation, chart deployment,
// Application registration, and smoke testing.
package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionInfo := VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	registry := NewCommandRegistry(versionInfo)
	registerCommands(registry)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerCommands(r *CommandRegistry) {
	r.Register(&Command{
		Name:        "cluster",
		Description: "Manage the local Kind tutorial cluster",
		Usage:       "gitopsctl cluster <create|delete> [flags]",
		Examples: []string{
			"gitopsctl cluster create --name gitops-demo --wait 60s",
			"gitopsctl cluster delete --name gitops-demo",
		},
		Run: clusterCommand,
	})

	r.Register(&Command{
		Name:        "argocd",
		Description: "Install and manage the Argo CD controller via Helm",
		Usage:       "gitopsctl argocd <install|uninstall|status> [flags]",
		Examples: []string{
			"gitopsctl argocd install",
			"gitopsctl argocd install --namespace argocd --timeout 10m",
			"gitopsctl argocd status",
			"gitopsctl argocd uninstall",
		},
		Run: argocdCommand,
	})

	r.Register(&Command{
		Name:        "ingress",
		Description: "Install and manage the ingress-nginx controller via Helm",
		Usage:       "gitopsctl ingress <install|uninstall|status> [flags]",
		Examples: []string{
			"gitopsctl ingress install",
			"gitopsctl ingress status",
			"gitopsctl ingress uninstall",
		},
		Run: ingressCommand,
	})

	r.Register(&Command{
		Name:        "app",
		Description: "Deploy the demo chart directly or register it with Argo CD",
		Usage:       "gitopsctl app <install|upgrade|uninstall|status|register> [flags]",
		Examples: []string{
			"gitopsctl app install --chart-path chart/ip-demo",
			"gitopsctl app upgrade --image localhost:5000/ip-demo:dev",
			"gitopsctl app register --manifest deploy/app.yaml",
			"gitopsctl app status",
			"gitopsctl app uninstall",
		},
		Run: appCommand,
	})

	r.Register(&Command{
		Name:        "smoke",
		Description: "Run an in-cluster smoke test against the deployed service",
		Usage:       "gitopsctl smoke run [flags]",
		Examples: []string{
			"gitopsctl smoke run --namespace demo",
			"gitopsctl smoke run --url http://ip-demo.demo/ip --no-cleanup",
		},
		Run: smokeCommand,
	})

	r.Register(&Command{
		Name:        "validate",
		Description: "Render the demo chart offline and check its manifests",
		Usage:       "gitopsctl validate [flags]",
		Examples: []string{
			"gitopsctl validate",
			"gitopsctl validate --chart-path chart/ip-demo --image ghcr.io/workingdad365/ip-demo:v0.1.0",
		},
		Run: validateCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "gitopsctl version",
		Examples: []string{
			"gitopsctl version",
		},
		Run: func(args []string) error {
			fmt.Printf("gitopsctl %s\n", r.version.Version)
			fmt.Printf("  commit: %s\n", r.version.Commit)
			fmt.Printf("  built:  %s\n", r.version.Date)
			return nil
		},
	})

	r.Register(&Command{
		Name:        "help",
		Description: "Show help information",
		Usage:       "gitopsctl help [command]",
		Examples: []string{
			"gitopsctl help",
		},
		Run: func(args []string) error {
			r.PrintHelp(os.Stdout)
			return nil
		},
	})
}
