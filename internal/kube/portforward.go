package kube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/portforward"
	"k8s.io/client-go/transport/spdy"
)

const forwardReadyTimeout = 15 * time.Second

// PortForwarder is a scoped local bridge to one pod of the service.
// Stop must be called regardless of outcome; it is safe to call more
// than once.
type PortForwarder struct {
	LocalPort uint16
	Pod       string

	stopCh   chan struct{}
	stopOnce sync.Once
	errCh    chan error
}

// Stop tears the bridge down.
func (f *PortForwarder) Stop() {
	f.stopOnce.Do(func() { close(f.stopCh) })
}

// ForwardToService picks a running pod behind the service's selector
// and forwards localPort (0 = ephemeral) to remotePort on it.
func ForwardToService(ctx context.Context, cs kubernetes.Interface, cfg *rest.Config, namespace, service string, localPort, remotePort int) (*PortForwarder, error) {
	svc, err := cs.CoreV1().Services(namespace).Get(ctx, service, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get service %s/%s: %w", namespace, service, err)
	}
	if len(svc.Spec.Selector) == 0 {
		return nil, fmt.Errorf("service %s/%s has no pod selector", namespace, service)
	}

	selector := labels.Set(svc.Spec.Selector).AsSelector().String()
	pods, err := cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list pods for %s/%s: %w", namespace, service, err)
	}

	var target *corev1.Pod
	for i := range pods.Items {
		if pods.Items[i].Status.Phase == corev1.PodRunning {
			target = &pods.Items[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("no running pod behind service %s/%s (selector %q)", namespace, service, selector)
	}

	req := cs.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(namespace).
		Name(target.Name).
		SubResource("portforward")

	transport, upgrader, err := spdy.RoundTripperFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("build spdy transport: %w", err)
	}
	dialer := spdy.NewDialer(upgrader, &http.Client{Transport: transport}, http.MethodPost, req.URL())

	f := &PortForwarder{
		Pod:    target.Name,
		stopCh: make(chan struct{}),
		errCh:  make(chan error, 1),
	}
	readyCh := make(chan struct{})

	ports := []string{fmt.Sprintf("%d:%d", localPort, remotePort)}
	fw, err := portforward.New(dialer, ports, f.stopCh, readyCh, io.Discard, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("create port forward: %w", err)
	}

	go func() {
		f.errCh <- fw.ForwardPorts()
	}()

	select {
	case <-readyCh:
	case err := <-f.errCh:
		return nil, fmt.Errorf("port forward to %s/%s: %w", namespace, target.Name, err)
	case <-time.After(forwardReadyTimeout):
		f.Stop()
		return nil, fmt.Errorf("port forward to %s/%s not ready after %s", namespace, target.Name, forwardReadyTimeout)
	case <-ctx.Done():
		f.Stop()
		return nil, ctx.Err()
	}

	forwarded, err := fw.GetPorts()
	if err != nil || len(forwarded) == 0 {
		f.Stop()
		return nil, fmt.Errorf("resolve forwarded port: %w", err)
	}
	f.LocalPort = forwarded[0].Local

	return f, nil
}
