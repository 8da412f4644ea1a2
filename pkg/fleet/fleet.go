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

// Package fleet joins the cluster's node inventory against cloud
// scaling-group membership (C3), producing the FleetSnapshot the rest of
// the pipeline sizes against.
package fleet

import "github.com/kube-aws-autoscaler/autoscaler/pkg/model"

// Join attaches asg_name to every node whose instance_id appears in
// instances, and groups the result by (asg_name, zone). Nodes with no
// matching scaling-group instance are dropped: they are not managed by this
// controller and must not influence size decisions.
func Join(nodes map[string]model.NodeInfo, instances []model.ASGInstance) model.FleetSnapshot {
	byInstanceID := make(map[string]model.ASGInstance, len(instances))
	for _, inst := range instances {
		byInstanceID[inst.InstanceID] = inst
	}

	snapshot := make(model.FleetSnapshot)
	for _, node := range nodes {
		inst, ok := byInstanceID[node.InstanceID]
		if !ok {
			continue
		}
		node.ASGName = inst.ASGName
		key := model.NewGroupKey(inst.ASGName, inst.Zone)
		snapshot[key] = append(snapshot[key], node)
	}
	return snapshot
}

// NodeNameToGroup builds a lookup from node name to the (asg, zone) group it
// belongs to, for use by the usage aggregator (C4) without re-deriving the
// instance-id join. Nodes dropped by Join (no scaling-group match) are
// absent from the result.
func NodeNameToGroup(snapshot model.FleetSnapshot) map[string]model.GroupKey {
	out := make(map[string]model.GroupKey)
	for key, nodes := range snapshot {
		for _, n := range nodes {
			out[n.Name] = key
		}
	}
	return out
}
