package helmutil

import (
	"fmt"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"
)

// LoadChart loads a chart from a local directory or archive.
func LoadChart(path string) (*chart.Chart, error) {
	ch, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart from %s: %w", path, err)
	}
	return ch, nil
}

// RenderChart expands a chart's templates offline, without a cluster.
// The returned map is keyed by template path (e.g.
// "ip-demo/templates/deployment.yaml"). Used by `gitopsctl validate`
// and by tests to check manifests before anything touches a cluster.
func RenderChart(ch *chart.Chart, values map[string]interface{}, releaseName, namespace string) (map[string]string, error) {
	opts := chartutil.ReleaseOptions{
		Name:      releaseName,
		Namespace: namespace,
	}

	renderValues, err := chartutil.ToRenderValues(ch, values, opts, chartutil.DefaultCapabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare render values: %w", err)
	}

	rendered, err := engine.Render(ch, renderValues)
	if err != nil {
		return nil, fmt.Errorf("failed to render templates: %w", err)
	}

	return rendered, nil
}
