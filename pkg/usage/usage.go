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

// Package usage aggregates pod resource requests per (asg, zone) group
// (C4).
package usage

import (
	apiv1 "k8s.io/api/core/v1"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/autoscalererrors"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/quantity"
)

// DefaultMemoryRequest is substituted for a container that declares no
// memory request, matching the cluster's conventional default.
const DefaultMemoryRequest = 50 * 1024 * 1024 // 50 MiB

// Aggregate sums the resource demand of every non-terminal pod in pods into
// a model.UsageMap, keyed by the (asg, zone) group its node belongs to
// (nodeToGroup, as built by fleet.NodeNameToGroup). A pod that is
// unscheduled, whose node is unknown, or whose node has no ASG is assigned
// to the sentinel model.UnknownGroup().
func Aggregate(pods []*apiv1.Pod, nodeToGroup map[string]model.GroupKey) (model.UsageMap, autoscalererrors.AutoscalerError) {
	out := make(model.UsageMap)
	for _, pod := range pods {
		phase := model.PodPhase(pod.Status.Phase)
		if phase.IsTerminal() {
			continue
		}

		requests, err := podRequests(pod)
		if err != nil {
			return nil, err
		}

		key := groupFor(pod, nodeToGroup)
		out[key] = out[key].Add(requests)
	}
	return out, nil
}

func groupFor(pod *apiv1.Pod, nodeToGroup map[string]model.GroupKey) model.GroupKey {
	if pod.Spec.NodeName == "" {
		return model.UnknownGroup()
	}
	key, ok := nodeToGroup[pod.Spec.NodeName]
	if !ok {
		return model.UnknownGroup()
	}
	return key
}

// podRequests sums a pod's container resource requests and applies the
// controller's defaults: a container with no cpu request contributes 0 cpu,
// a container with no memory request contributes DefaultMemoryRequest, and
// every pod contributes exactly 1 to the "pods" resource regardless of
// container count.
func podRequests(pod *apiv1.Pod) (model.ResourceVector, autoscalererrors.AutoscalerError) {
	total := model.ZeroVector()
	total[model.ResourcePods] = 1

	for _, c := range pod.Spec.Containers {
		if cpu, ok := c.Resources.Requests[apiv1.ResourceCPU]; ok {
			total[model.ResourceCPU] += cpu.AsApproximateFloat64()
		}

		if mem, ok := c.Resources.Requests[apiv1.ResourceMemory]; ok {
			total[model.ResourceMemory] += mem.AsApproximateFloat64()
		} else {
			total[model.ResourceMemory] += DefaultMemoryRequest
		}
	}

	return total, nil
}

// ParseRawRequests builds one pod's request vector from raw quantity
// strings rather than already-decoded resource.Quantity values, keeping
// pkg/quantity's grammar as the single source of truth for that decode.
// Aggregate does not call it.
func ParseRawRequests(cpu, memory string) (model.ResourceVector, autoscalererrors.AutoscalerError) {
	v := model.ZeroVector()
	v[model.ResourcePods] = 1
	if cpu != "" {
		val, err := quantity.Parse(cpu)
		if err != nil {
			return nil, err
		}
		v[model.ResourceCPU] = val
	}
	if memory != "" {
		val, err := quantity.Parse(memory)
		if err != nil {
			return nil, err
		}
		v[model.ResourceMemory] = val
	} else {
		v[model.ResourceMemory] = DefaultMemoryRequest
	}
	return v, nil
}
