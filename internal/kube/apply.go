// Package kube provides the small amount of raw Kubernetes access
// gitopsctl needs beyond Helm: applying the Argo CD Application
// manifest and running the in-cluster smoke test pod.
package kube

import (
	"bytes"
	"context"
	"fmt"
	"io"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	k8syaml "k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
)

// Applier creates or updates arbitrary manifests through the dynamic
// client, resolving each object's resource via API discovery.
type Applier struct {
	dynamic dynamic.Interface
	mapper  meta.RESTMapper
}

// NewApplier builds an Applier from a REST config.
func NewApplier(cfg *rest.Config) (*Applier, error) {
	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	dc, err := discovery.NewDiscoveryClientForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(dc))

	return &Applier{dynamic: dyn, mapper: mapper}, nil
}

// Apply decodes a (possibly multi-document) YAML manifest and creates
// each object, updating it in place when it already exists. The
// defaultNamespace is used for namespaced objects that carry none.
func (a *Applier) Apply(ctx context.Context, manifest []byte, defaultNamespace string) error {
	decoder := k8syaml.NewYAMLOrJSONDecoder(bytes.NewReader(manifest), 4096)

	for {
		obj := &unstructured.Unstructured{}
		if err := decoder.Decode(obj); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode manifest: %w", err)
		}
		if obj.Object == nil {
			continue // blank document
		}

		if err := a.applyObject(ctx, obj, defaultNamespace); err != nil {
			return err
		}
	}
}

func (a *Applier) applyObject(ctx context.Context, obj *unstructured.Unstructured, defaultNamespace string) error {
	gvk := obj.GroupVersionKind()
	mapping, err := a.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return fmt.Errorf("failed to resolve resource for %s: %w", gvk, err)
	}

	var ri dynamic.ResourceInterface = a.dynamic.Resource(mapping.Resource)
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		ns := obj.GetNamespace()
		if ns == "" {
			ns = defaultNamespace
		}
		ri = a.dynamic.Resource(mapping.Resource).Namespace(ns)
	}

	_, err = ri.Create(ctx, obj, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		existing, getErr := ri.Get(ctx, obj.GetName(), metav1.GetOptions{})
		if getErr != nil {
			return fmt.Errorf("failed to fetch existing %s/%s: %w", gvk.Kind, obj.GetName(), getErr)
		}
		obj.SetResourceVersion(existing.GetResourceVersion())
		_, err = ri.Update(ctx, obj, metav1.UpdateOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to apply %s/%s: %w", gvk.Kind, obj.GetName(), err)
	}

	return nil
}
