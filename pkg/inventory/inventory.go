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

// Package inventory builds the node inventory (C2): a normalized
// nodeName -> model.NodeInfo map built from the cluster's live node list.
package inventory

import (
	apiv1 "k8s.io/api/core/v1"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
)

const (
	regionLabel       = "failure-domain.beta.kubernetes.io/region"
	zoneLabel         = "failure-domain.beta.kubernetes.io/zone"
	instanceTypeLabel = "beta.kubernetes.io/instance-type"
)

// Build extracts a model.NodeInfo for every node in nodes, keyed by node
// name. No node is filtered out here: ASG membership (C3) is the stage that
// drops unmanaged nodes. Missing labels become model.UnknownLabel; missing
// capacity entries become 0.
//
// client-go has already decoded status.capacity into resource.Quantity
// values by the time a *apiv1.Node reaches us, so there is no quantity
// grammar left to parse here. Container resource requests reach pkg/usage
// already decoded the same way; pkg/quantity parses only raw strings
// (usage.ParseRawRequests).
func Build(nodes []*apiv1.Node) map[string]model.NodeInfo {
	out := make(map[string]model.NodeInfo, len(nodes))
	for _, node := range nodes {
		out[node.Name] = buildOne(node)
	}
	return out
}

func buildOne(node *apiv1.Node) model.NodeInfo {
	return model.NodeInfo{
		Name:         node.Name,
		Region:       labelOrUnknown(node.Labels, regionLabel),
		Zone:         labelOrUnknown(node.Labels, zoneLabel),
		InstanceType: labelOrUnknown(node.Labels, instanceTypeLabel),
		InstanceID:   node.Spec.ExternalID,
		Capacity:     parseCapacity(node.Status.Capacity),
	}
}

func labelOrUnknown(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return model.UnknownLabel
}

func parseCapacity(resources apiv1.ResourceList) model.ResourceVector {
	cap := model.ZeroVector()
	if q, ok := resources[apiv1.ResourceCPU]; ok {
		cap[model.ResourceCPU] = q.AsApproximateFloat64()
	}
	if q, ok := resources[apiv1.ResourceMemory]; ok {
		cap[model.ResourceMemory] = q.AsApproximateFloat64()
	}
	if q, ok := resources[apiv1.ResourcePods]; ok {
		cap[model.ResourcePods] = q.AsApproximateFloat64()
	}
	return cap
}
