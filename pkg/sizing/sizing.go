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

// Package sizing computes the minimum node count per scaling group that
// covers buffered demand (C6).
package sizing

import (
	"math"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/autoscalererrors"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/bufferpolicy"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
)

// SentinelDistribution selects how demand assigned to the sentinel
// model.UnknownGroup() (pods with no known (asg, zone)) is folded into the
// per-group sizing computation.
type SentinelDistribution int

const (
	// DistributeReplicate adds the full sentinel vector to every live
	// (asg, zone) group, so each group alone could absorb it. Conservative:
	// the default.
	DistributeReplicate SentinelDistribution = iota
	// DistributeSplit divides the sentinel vector evenly across the live
	// groups instead of replicating it into each.
	DistributeSplit
)

// Solve computes required node counts per ASG from a fleet snapshot and its
// usage map. snapshot supplies both the per-(asg,zone) node count and a
// representative node's capacity (any node in the group may serve: capacity
// is assumed uniform within a group). bp and bf are the same buffer
// configuration C5 applies elsewhere.
func Solve(snapshot model.FleetSnapshot, usage model.UsageMap, bp bufferpolicy.Percentages, bf bufferpolicy.Fixed, dist SentinelDistribution) (map[string]int64, autoscalererrors.AutoscalerError) {
	sentinel := usage[model.UnknownGroup()]

	liveGroups := make([]model.GroupKey, 0, len(snapshot))
	for key := range snapshot {
		liveGroups = append(liveGroups, key)
	}

	sizes := make(map[string]int64)
	for _, key := range liveGroups {
		nodes := snapshot[key]
		if len(nodes) == 0 {
			continue
		}

		demand := usage[key].Clone()
		demand = demand.Add(distributedSentinel(sentinel, dist, len(liveGroups)))

		needed := bufferpolicy.Apply(demand, bp, bf)

		capacity := nodes[0].Capacity
		required, err := requiredForGroup(needed, capacity, key)
		if err != nil {
			return nil, err
		}

		sizes[key.ASG] += required
	}
	return sizes, nil
}

// distributedSentinel returns the portion of the sentinel demand vector that
// a single live group must additionally absorb, per dist.
func distributedSentinel(sentinel model.ResourceVector, dist SentinelDistribution, liveGroupCount int) model.ResourceVector {
	if len(sentinel) == 0 || liveGroupCount == 0 {
		return model.ZeroVector()
	}
	if dist == DistributeSplit {
		out := make(model.ResourceVector, len(sentinel))
		for r, v := range sentinel {
			out[r] = v / float64(liveGroupCount)
		}
		return out
	}
	return sentinel
}

// requiredForGroup implements §4.6 step 3: required[r] = ceil(needed[r] /
// capacity[r]) when needed[r] > 0, else 0; required is the max over r.
func requiredForGroup(needed, capacity model.ResourceVector, key model.GroupKey) (int64, autoscalererrors.AutoscalerError) {
	var required int64
	for r, need := range needed {
		if need <= 0 {
			continue
		}
		c := capacity[r]
		if c <= 0 {
			return 0, autoscalererrors.NewInvalidCapacityError(key, r)
		}
		perResource := int64(math.Ceil(need / c))
		if perResource > required {
			required = perResource
		}
	}
	return required, nil
}
