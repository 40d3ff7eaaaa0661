package helmutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const chartPath = "../../chart/ip-demo"

func renderDemo(t *testing.T, values map[string]interface{}) map[string]string {
	t.Helper()

	ch, err := LoadChart(chartPath)
	require.NoError(t, err)

	rendered, err := RenderChart(ch, values, "ip-demo", "default")
	require.NoError(t, err)
	return rendered
}

// manifest unmarshals a rendered template into a generic map for
// structural assertions.
func manifest(t *testing.T, rendered map[string]string, name string) map[string]interface{} {
	t.Helper()

	body, ok := rendered["ip-demo/templates/"+name]
	require.True(t, ok, "template %s not rendered", name)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(body), &doc))
	return doc
}

func TestRenderChart_Defaults(t *testing.T) {
	rendered := renderDemo(t, nil)

	deploy := manifest(t, rendered, "deployment.yaml")
	assert.Equal(t, "Deployment", deploy["kind"])

	body := rendered["ip-demo/templates/deployment.yaml"]
	assert.Contains(t, body, "image: \"ghcr.io/workingdad365/ip-demo:latest\"")
	assert.Contains(t, body, "containerPort: 8080")
	assert.Contains(t, body, "path: /healthz")

	svc := manifest(t, rendered, "service.yaml")
	assert.Equal(t, "Service", svc["kind"])

	// Ingress is disabled by default; the template renders empty.
	ing := strings.TrimSpace(rendered["ip-demo/templates/ingress.yaml"])
	assert.Empty(t, ing)
}

func TestRenderChart_ImageOverride(t *testing.T) {
	rendered := renderDemo(t, map[string]interface{}{
		"image": map[string]interface{}{
			"repository": "localhost:5000/ip-demo",
			"tag":        "dev",
		},
	})

	body := rendered["ip-demo/templates/deployment.yaml"]
	assert.Contains(t, body, "image: \"localhost:5000/ip-demo:dev\"")
}

func TestRenderChart_IngressEnabled(t *testing.T) {
	rendered := renderDemo(t, map[string]interface{}{
		"ingress": map[string]interface{}{
			"enabled": true,
			"host":    "demo.example.com",
		},
	})

	ing := manifest(t, rendered, "ingress.yaml")
	assert.Equal(t, "Ingress", ing["kind"])
	assert.Contains(t, rendered["ip-demo/templates/ingress.yaml"], "host: demo.example.com")
	assert.Contains(t, rendered["ip-demo/templates/ingress.yaml"], "ingressClassName: nginx")
}

func TestRenderChart_EnvMap(t *testing.T) {
	rendered := renderDemo(t, map[string]interface{}{
		"env": map[string]interface{}{
			"GREETING_MESSAGE": "Hello from GitOps!",
		},
	})

	body := rendered["ip-demo/templates/deployment.yaml"]
	assert.Contains(t, body, "name: GREETING_MESSAGE")
	assert.Contains(t, body, "value: \"Hello from GitOps!\"")
}

func TestRenderChart_ReplicaCount(t *testing.T) {
	rendered := renderDemo(t, map[string]interface{}{
		"replicaCount": 3,
	})

	assert.Contains(t, rendered["ip-demo/templates/deployment.yaml"], "replicas: 3")
}
