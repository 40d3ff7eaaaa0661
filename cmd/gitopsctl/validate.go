package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/workingdad365/gitops-test/internal/helmutil"
)

func validateCommand(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	chartPath := fs.String("chart-path", "chart/ip-demo", "Path to the chart")
	image := fs.String("image", "", "Container image override (repository:tag)")
	host := fs.String("host", "", "Enable the ingress with this hostname")
	show := fs.Bool("show", false, "Print the rendered manifests")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render the demo chart offline and check its manifests

No cluster is needed; templates are expanded locally with the chart's
default values plus any overrides given here.

USAGE:
    gitopsctl validate [flags]

FLAGS:
    --chart-path string   Path to the chart (default "chart/ip-demo")
    --image string        Container image override (repository:tag)
    --host string         Enable the ingress with this hostname
    --show                Print the rendered manifests

EXAMPLES:
    gitopsctl validate
    gitopsctl validate --image ghcr.io/workingdad365/ip-demo:v0.1.0 --show
    gitopsctl validate --host ip-demo.local
`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	ch, err := helmutil.LoadChart(*chartPath)
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
	if *host != "" {
		values["ingress"] = map[string]interface{}{
			"enabled": true,
			"host":    *host,
		}
	}

	rendered, err := helmutil.RenderChart(ch, values, "ip-demo", "demo")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(rendered))
	for name, body := range rendered {
		if strings.TrimSpace(body) == "" {
			continue // disabled or helper-only template
		}
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("✓ Chart %s rendered successfully (%d manifests)\n", ch.Name(), len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
		if *show {
			fmt.Println(strings.TrimSpace(rendered[name]))
			fmt.Println("---")
		}
	}

	return nil
}
