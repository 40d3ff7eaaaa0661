package kube

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// SmokeTestPodName is the throwaway pod created by `gitopsctl smoke run`.
const SmokeTestPodName = "ip-demo-smoke"

// SmokeTestImage runs a single curl against the deployed service.
const SmokeTestImage = "curlimages/curl:8.10.1"

// SmokeOptions configures the in-cluster smoke test.
type SmokeOptions struct {
	Namespace string
	// URL the test pod curls, e.g. "http://ip-demo.demo/ip".
	URL string
	// Expect is a substring the response body must contain.
	Expect string
	// Timeout bounds the wait for pod completion.
	Timeout time.Duration
	// PollInterval is how often pod status is checked.
	PollInterval time.Duration
}

// RunSmokeTest creates a curl pod against the deployed service, waits
// for it to complete, and verifies its output contains the expected
// substring. The pod is replaced if a previous run left one behind;
// callers remove it afterwards with CleanupSmokeTest.
func RunSmokeTest(ctx context.Context, clientset kubernetes.Interface, opts SmokeOptions) (string, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	pods := clientset.CoreV1().Pods(opts.Namespace)

	// Replace any leftover pod from a previous run.
	if err := pods.Delete(ctx, SmokeTestPodName, metav1.DeleteOptions{}); err == nil {
		if err := waitForPodGone(ctx, clientset, opts.Namespace, SmokeTestPodName, opts.Timeout); err != nil {
			return "", err
		}
	}

	if _, err := pods.Create(ctx, smokeTestPod(opts), metav1.CreateOptions{}); err != nil {
		return "", fmt.Errorf("failed to create smoke test pod: %w", err)
	}

	if err := WaitForPodCompletion(ctx, clientset, opts.Namespace, SmokeTestPodName, opts.Timeout, opts.PollInterval); err != nil {
		if logs := PodLogs(ctx, clientset, opts.Namespace, SmokeTestPodName); logs != "" {
			return logs, fmt.Errorf("smoke test pod failed: %w", err)
		}
		return "", fmt.Errorf("smoke test pod failed: %w", err)
	}

	logs := PodLogs(ctx, clientset, opts.Namespace, SmokeTestPodName)
	if logs == "" {
		return "", fmt.Errorf("no output from smoke test pod")
	}

	if opts.Expect != "" && !strings.Contains(logs, opts.Expect) {
		return logs, fmt.Errorf("unexpected response from service: %q not found", opts.Expect)
	}

	return logs, nil
}

// CleanupSmokeTest removes the smoke test pod; a missing pod is not an
// error.
func CleanupSmokeTest(ctx context.Context, clientset kubernetes.Interface, namespace string) error {
	err := clientset.CoreV1().Pods(namespace).Delete(ctx, SmokeTestPodName, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete smoke test pod: %w", err)
	}
	return nil
}

func smokeTestPod(opts SmokeOptions) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      SmokeTestPodName,
			Namespace: opts.Namespace,
			Labels: map[string]string{
				"app":                          "ip-demo-smoke",
				"app.kubernetes.io/managed-by": "gitopsctl",
			},
		},
		Spec: corev1.PodSpec{
			RestartPolicy: corev1.RestartPolicyNever,
			Containers: []corev1.Container{
				{
					Name:  "curl",
					Image: SmokeTestImage,
					Args:  []string{"-sS", "--max-time", "10", opts.URL},
				},
			},
		},
	}
}

// WaitForPodCompletion polls until the pod succeeds, failing on pod
// failure, a non-zero container exit, or timeout.
func WaitForPodCompletion(ctx context.Context, clientset kubernetes.Interface, namespace, podName string, timeout, interval time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for pod to complete")
		case <-ticker.C:
			pod, err := clientset.CoreV1().Pods(namespace).Get(ctx, podName, metav1.GetOptions{})
			if err != nil {
				return fmt.Errorf("failed to get pod status: %w", err)
			}

			switch pod.Status.Phase {
			case corev1.PodSucceeded:
				return nil
			case corev1.PodFailed:
				return fmt.Errorf("pod failed")
			case corev1.PodRunning:
				// A completed container can linger in Running briefly.
				if len(pod.Status.ContainerStatuses) > 0 {
					status := pod.Status.ContainerStatuses[0]
					if status.State.Terminated != nil {
						if status.State.Terminated.ExitCode == 0 {
							return nil
						}
						return fmt.Errorf("container exited with code %d", status.State.Terminated.ExitCode)
					}
				}
			}
		}
	}
}

// waitForPodGone polls until the named pod is fully deleted.
func waitForPodGone(ctx context.Context, clientset kubernetes.Interface, namespace, podName string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for pod %s to be deleted", podName)
		case <-ticker.C:
			_, err := clientset.CoreV1().Pods(namespace).Get(ctx, podName, metav1.GetOptions{})
			if apierrors.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to check pod deletion: %w", err)
			}
		}
	}
}

// PodLogs retrieves a pod's logs, returning an empty string on error.
func PodLogs(ctx context.Context, clientset kubernetes.Interface, namespace, podName string) string {
	req := clientset.CoreV1().Pods(namespace).GetLogs(podName, &corev1.PodLogOptions{})
	logs, err := req.Stream(ctx)
	if err != nil {
		return ""
	}
	defer logs.Close()

	buf := new(strings.Builder)
	_, _ = io.Copy(buf, logs)
	return buf.String()
}
