/*
Copyright 2016 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package kube resolves cluster API credentials and implements
// reconciler.ClusterObserver against a real k8s.io/client-go clientset.
package kube

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
)

// GetConfig resolves a *rest.Config. A non-empty kubeConfigPath is used
// directly; otherwise in-cluster service-account credentials are tried
// first, falling back to ~/.kube/config.
func GetConfig(kubeConfigPath string) (*rest.Config, error) {
	path := kubeConfigPath
	if path == "" {
		if cfg, err := rest.InClusterConfig(); err == nil {
			klog.V(1).Info("using in-cluster credentials")
			return cfg, nil
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolving home directory for default kubeconfig")
		}
		path = filepath.Join(home, ".kube", "config")
	}

	klog.V(1).Infof("using kubeconfig file: %s", path)
	cfg, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, errors.Wrapf(err, "building kube client config from %s", path)
	}
	return cfg, nil
}

// NewClient builds a clientset for cfg.
func NewClient(cfg *rest.Config) (kubernetes.Interface, error) {
	client, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "building kube client")
	}
	return client, nil
}

// ClusterObserver implements reconciler.ClusterObserver over a real
// kubernetes.Interface, listing the full node and pod set on every call
// with no caching or informer layer: each reconciliation pass gets a fresh
// read.
type ClusterObserver struct {
	Client kubernetes.Interface
}

// NewClusterObserver wraps client as a ClusterObserver.
func NewClusterObserver(client kubernetes.Interface) *ClusterObserver {
	return &ClusterObserver{Client: client}
}

// ListNodes returns every node in the cluster.
func (o *ClusterObserver) ListNodes(ctx context.Context) ([]*apiv1.Node, error) {
	list, err := o.Client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "listing nodes")
	}
	nodes := make([]*apiv1.Node, len(list.Items))
	for i := range list.Items {
		nodes[i] = &list.Items[i]
	}
	return nodes, nil
}

// ListPods returns every pod in the cluster, across all namespaces.
func (o *ClusterObserver) ListPods(ctx context.Context) ([]*apiv1.Pod, error) {
	list, err := o.Client.CoreV1().Pods(apiv1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "listing pods")
	}
	pods := make([]*apiv1.Pod, len(list.Items))
	for i := range list.Items {
		pods[i] = &list.Items[i]
	}
	return pods, nil
}
