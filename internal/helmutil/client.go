// Package helmutil wraps the Helm Go SDK for the install, uninstall,
// status, and offline-render operations used by gitopsctl. All cluster
// access goes through the standard Helm environment (kubeconfig,
// HELM_DRIVER, repository cache), so the CLI behaves like helm itself.
package helmutil

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/release"
	"helm.sh/helm/v3/pkg/repo"
	"k8s.io/client-go/rest"
)

// Client is a namespaced Helm action client.
type Client struct {
	settings *cli.EnvSettings
	config   *action.Configuration
}

// NewClient initializes a Helm client scoped to the given namespace.
func NewClient(namespace string) (*Client, error) {
	settings := cli.New()
	settings.SetNamespace(namespace)

	config := new(action.Configuration)
	if err := config.Init(settings.RESTClientGetter(), namespace,
		os.Getenv("HELM_DRIVER"), log.Printf); err != nil {
		return nil, fmt.Errorf("failed to initialize Helm: %w", err)
	}

	return &Client{settings: settings, config: config}, nil
}

// RESTConfig returns the Kubernetes REST config Helm resolved from the
// current environment, for callers that need a raw client-go client.
func (c *Client) RESTConfig() (*rest.Config, error) {
	return c.settings.RESTClientGetter().ToRESTConfig()
}

// AddRepo registers a chart repository and downloads its index.
func (c *Client) AddRepo(name, url string) error {
	repoFile := c.settings.RepositoryConfig
	repoDir := filepath.Dir(repoFile)

	if err := os.MkdirAll(repoDir, 0o750); err != nil {
		return fmt.Errorf("failed to create repository directory: %w", err)
	}

	entry := &repo.Entry{
		Name: name,
		URL:  url,
	}

	r, err := repo.NewChartRepository(entry, getter.All(c.settings))
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	if _, err := r.DownloadIndexFile(); err != nil {
		return fmt.Errorf("failed to download repository index: %w", err)
	}

	repoFileData, err := repo.LoadFile(repoFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load repository file: %w", err)
	}
	if os.IsNotExist(err) {
		repoFileData = repo.NewFile()
	}

	repoFileData.Update(entry)

	if err := repoFileData.WriteFile(repoFile, 0o644); err != nil {
		return fmt.Errorf("failed to write repository file: %w", err)
	}

	return nil
}

// InstallOptions configures a chart install.
type InstallOptions struct {
	ReleaseName     string
	Namespace       string
	CreateNamespace bool
	Wait            bool
	Timeout         time.Duration
	Values          map[string]interface{}
}

// InstallFromRepo installs a chart referenced as repo/name, e.g.
// "argo/argo-cd". The repository must have been added first.
func (c *Client) InstallFromRepo(chartRef string, opts InstallOptions) (*release.Release, error) {
	client := c.newInstall(opts)

	chartPath, err := client.ChartPathOptions.LocateChart(chartRef, c.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to locate chart %s: %w", chartRef, err)
	}

	ch, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", chartRef, err)
	}

	return c.runInstall(client, ch, opts)
}

// InstallLocal installs a chart from a local directory.
func (c *Client) InstallLocal(chartPath string, opts InstallOptions) (*release.Release, error) {
	ch, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart from %s: %w", chartPath, err)
	}

	return c.runInstall(c.newInstall(opts), ch, opts)
}

func (c *Client) newInstall(opts InstallOptions) *action.Install {
	client := action.NewInstall(c.config)
	client.ReleaseName = opts.ReleaseName
	client.Namespace = opts.Namespace
	client.CreateNamespace = opts.CreateNamespace
	client.Wait = opts.Wait
	client.Timeout = opts.Timeout
	return client
}

func (c *Client) runInstall(client *action.Install, ch *chart.Chart, opts InstallOptions) (*release.Release, error) {
	rel, err := client.Run(ch, opts.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to install %s: %w", opts.ReleaseName, err)
	}
	return rel, nil
}

// Upgrade upgrades an existing release from a local chart directory.
func (c *Client) Upgrade(releaseName, chartPath string, opts InstallOptions) (*release.Release, error) {
	ch, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart from %s: %w", chartPath, err)
	}

	client := action.NewUpgrade(c.config)
	client.Namespace = opts.Namespace
	client.Wait = opts.Wait
	client.Timeout = opts.Timeout

	rel, err := client.Run(releaseName, ch, opts.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade %s: %w", releaseName, err)
	}
	return rel, nil
}

// Uninstall removes a release.
func (c *Client) Uninstall(releaseName string) error {
	client := action.NewUninstall(c.config)
	if _, err := client.Run(releaseName); err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", releaseName, err)
	}
	return nil
}

// Status returns the release status.
func (c *Client) Status(releaseName string) (*release.Release, error) {
	client := action.NewStatus(c.config)
	rel, err := client.Run(releaseName)
	if err != nil {
		return nil, fmt.Errorf("failed to get status of %s: %w", releaseName, err)
	}
	return rel, nil
}
