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

// Package reconciler wires the node inventory, ASG join, usage aggregator,
// buffer policy, required-size solver and resize applier into a single
// observe-decide-act pass (C8).
package reconciler

import (
	"context"

	apiv1 "k8s.io/api/core/v1"
	"k8s.io/klog/v2"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/autoscalererrors"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/bufferpolicy"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/fleet"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/inventory"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/sizing"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/usage"
)

// ClusterObserver is the inbound cluster API surface the reconciler needs:
// the full set of nodes and non-terminal-or-not pods, taken independently
// (not as one consistent snapshot; see the ordering note on RunOnce).
type ClusterObserver interface {
	ListNodes(ctx context.Context) ([]*apiv1.Node, error)
	ListPods(ctx context.Context) ([]*apiv1.Pod, error)
}

// CloudObserver is the inbound cloud scaling-group membership surface.
type CloudObserver interface {
	DescribeInstances(ctx context.Context) ([]model.ASGInstance, error)
}

// CloudWriter is the outbound cloud scaling-group surface: given the
// solver's required sizes, clamp and apply them.
type CloudWriter interface {
	Apply(ctx context.Context, sizes map[string]int64, dryRun bool) autoscalererrors.AutoscalerError
}

// Config is the buffer policy and strategy configuration for one pass,
// supplied explicitly so no global state is needed between passes.
type Config struct {
	Percentages          bufferpolicy.Percentages
	Fixed                bufferpolicy.Fixed
	SentinelDistribution sizing.SentinelDistribution
	DryRun               bool
}

// Reconciler wires C2-C7 behind the three observer/writer interfaces.
type Reconciler struct {
	Cluster ClusterObserver
	Cloud   CloudObserver
	Writer  CloudWriter
	Config  Config
}

// New builds a Reconciler from its collaborators and configuration.
func New(cluster ClusterObserver, cloud CloudObserver, writer CloudWriter, cfg Config) *Reconciler {
	return &Reconciler{Cluster: cluster, Cloud: cloud, Writer: writer, Config: cfg}
}

// RunOnce executes a single observe-decide-act pass. Observations are taken
// in the order nodes -> ASG membership -> pods; they are not a consistent
// snapshot (see §5). Any component error aborts the pass; no partial
// set-desired-capacity calls are retracted, since they are already
// idempotent and safe to retry on the next pass.
func (r *Reconciler) RunOnce(ctx context.Context) autoscalererrors.AutoscalerError {
	nodes, err := r.Cluster.ListNodes(ctx)
	if err != nil {
		return autoscalererrors.NewExternalUnavailableError("list nodes", err)
	}
	nodeInfos := inventory.Build(nodes)

	instances, err := r.Cloud.DescribeInstances(ctx)
	if err != nil {
		return autoscalererrors.NewExternalUnavailableError("describe auto scaling instances", err)
	}
	snapshot := fleet.Join(nodeInfos, instances)
	nodeToGroup := fleet.NodeNameToGroup(snapshot)

	pods, err := r.Cluster.ListPods(ctx)
	if err != nil {
		return autoscalererrors.NewExternalUnavailableError("list pods", err)
	}
	usageMap, aerr := usage.Aggregate(pods, nodeToGroup)
	if aerr != nil {
		return aerr
	}

	sizes, aerr := sizing.Solve(snapshot, usageMap, r.Config.Percentages, r.Config.Fixed, r.Config.SentinelDistribution)
	if aerr != nil {
		return aerr
	}

	klog.V(1).Infof("reconciler: pass computed required sizes %v (dry-run=%v)", sizes, r.Config.DryRun)

	if aerr := r.Writer.Apply(ctx, sizes, r.Config.DryRun); aerr != nil {
		return aerr
	}
	return nil
}
