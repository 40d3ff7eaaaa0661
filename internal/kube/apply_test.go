package kube

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

const applicationManifest = `apiVersion: argoproj.io/v1alpha1
kind: Application
metadata:
  name: ip-demo
  namespace: argocd
spec:
  project: default
  source:
    repoURL: https://github.com/workingdad365/gitops-test.git
    targetRevision: main
    path: chart/ip-demo
  destination:
    server: https://kubernetes.default.svc
    namespace: demo
  syncPolicy:
    automated:
      prune: true
      selfHeal: true
    syncOptions:
      - CreateNamespace=true
`

var applicationGVR = schema.GroupVersionResource{
	Group:    "argoproj.io",
	Version:  "v1alpha1",
	Resource: "applications",
}

func newTestApplier() (*Applier, *dynamicfake.FakeDynamicClient) {
	scheme := runtime.NewScheme()
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme,
		map[schema.GroupVersionResource]string{
			applicationGVR: "ApplicationList",
		})

	mapper := meta.NewDefaultRESTMapper(nil)
	mapper.Add(schema.GroupVersionKind{
		Group:   "argoproj.io",
		Version: "v1alpha1",
		Kind:    "Application",
	}, meta.RESTScopeNamespace)

	return &Applier{dynamic: dyn, mapper: mapper}, dyn
}

func getApplication(t *testing.T, dyn *dynamicfake.FakeDynamicClient) map[string]interface{} {
	t.Helper()

	app, err := dyn.Resource(applicationGVR).Namespace("argocd").
		Get(context.Background(), "ip-demo", metav1.GetOptions{})
	require.NoError(t, err)
	return app.Object
}

func TestApply_CreatesApplication(t *testing.T) {
	applier, dyn := newTestApplier()

	err := applier.Apply(context.Background(), []byte(applicationManifest), "argocd")
	require.NoError(t, err)

	obj := getApplication(t, dyn)

	path, _, err := unstructured.NestedString(obj, "spec", "source", "path")
	require.NoError(t, err)
	assert.Equal(t, "chart/ip-demo", path)

	prune, _, err := unstructured.NestedBool(obj, "spec", "syncPolicy", "automated", "prune")
	require.NoError(t, err)
	assert.True(t, prune)
}

func TestApply_UpdatesExistingApplication(t *testing.T) {
	applier, dyn := newTestApplier()
	ctx := context.Background()

	require.NoError(t, applier.Apply(ctx, []byte(applicationManifest), "argocd"))

	modified := strings.Replace(applicationManifest, "targetRevision: main", "targetRevision: v0.2.0", 1)
	require.NoError(t, applier.Apply(ctx, []byte(modified), "argocd"))

	obj := getApplication(t, dyn)
	rev, _, err := unstructured.NestedString(obj, "spec", "source", "targetRevision")
	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", rev)
}

func TestApply_UnknownKind(t *testing.T) {
	applier, _ := newTestApplier()

	manifest := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: cm\n"
	err := applier.Apply(context.Background(), []byte(manifest), "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve resource")
}

func TestApply_MalformedManifest(t *testing.T) {
	applier, _ := newTestApplier()

	err := applier.Apply(context.Background(), []byte("{not yaml"), "default")
	assert.Error(t, err)
}
