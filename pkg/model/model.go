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

// Package model holds the typed snapshot structures shared by every stage of
// the reconciliation pipeline. None of these types carry behavior that talks
// to the cluster or the cloud; they are the pure data the pipeline transforms.
package model

const (
	// ResourceCPU is the CPU resource name, in fractional cores.
	ResourceCPU = "cpu"
	// ResourceMemory is the memory resource name, in bytes.
	ResourceMemory = "memory"
	// ResourcePods is the pod-count resource name.
	ResourcePods = "pods"

	// UnknownLabel is the placeholder used for a node's region, zone,
	// instance type or ASG name when the underlying label or lookup is
	// absent.
	UnknownLabel = "unknown"
)

// ResourceVector maps a resource name to a non-negative quantity. All
// arithmetic on a ResourceVector is per-resource independent: there is no
// cross-resource normalization or weighting.
type ResourceVector map[string]float64

// Clone returns an independent copy of v.
func (v ResourceVector) Clone() ResourceVector {
	out := make(ResourceVector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Add returns a new vector holding the per-resource sum of v and other.
func (v ResourceVector) Add(other ResourceVector) ResourceVector {
	out := v.Clone()
	for k, val := range other {
		out[k] += val
	}
	return out
}

// Get returns v[resource], or 0 if absent.
func (v ResourceVector) Get(resource string) float64 {
	return v[resource]
}

// ZeroVector returns a ResourceVector with every tracked resource present
// and set to 0, so callers can rely on key presence rather than zero-value
// map lookups when iterating resources.
func ZeroVector() ResourceVector {
	return ResourceVector{
		ResourceCPU:    0,
		ResourceMemory: 0,
		ResourcePods:   0,
	}
}

// Sufficient reports whether have is covered by need: every resource present
// in either vector must satisfy have[r] <= need[r]. have conventionally
// represents current usage/buffered-demand and need the available capacity.
func Sufficient(have, need ResourceVector) bool {
	seen := make(map[string]struct{}, len(have)+len(need))
	for r := range have {
		seen[r] = struct{}{}
	}
	for r := range need {
		seen[r] = struct{}{}
	}
	for r := range seen {
		if have[r] > need[r] {
			return false
		}
	}
	return true
}

// NodeInfo is a normalized view of one cluster node, joined with its cloud
// scaling-group membership where known.
type NodeInfo struct {
	Name         string
	Region       string
	Zone         string
	InstanceID   string
	InstanceType string
	Capacity     ResourceVector

	// ASGName is empty until a NodeInfo has been joined against scaling-group
	// membership (C3). A NodeInfo with no ASGName is not placed into any
	// FleetSnapshot group.
	ASGName string
}

// PodPhase mirrors the subset of corev1.PodPhase values the usage aggregator
// (C4) distinguishes.
type PodPhase string

const (
	// PodPending is the Pending phase. Every non-terminal phase (Pending,
	// Running, Unknown) counts as live demand.
	PodPending PodPhase = "Pending"
	// PodSucceeded and PodFailed are the two terminal phases that contribute
	// no demand.
	PodSucceeded PodPhase = "Succeeded"
	PodFailed    PodPhase = "Failed"
)

// IsTerminal reports whether p contributes no demand to the usage aggregator.
func (p PodPhase) IsTerminal() bool {
	return p == PodSucceeded || p == PodFailed
}

// PodRequest is a normalized view of one pod's resource demand.
type PodRequest struct {
	Name      string
	Namespace string
	NodeName  string // empty if unscheduled
	Phase     PodPhase
	Requests  ResourceVector
}

// GroupKey identifies a (scaling group, availability zone) pair, or the
// sentinel "unknown" group for demand that cannot yet be attributed to one.
// It is a tagged variant rather than a pair of magic strings: IsUnknown is
// the discriminant, and ASG/Zone are meaningless when it is set.
type GroupKey struct {
	ASG       string
	Zone      string
	IsUnknown bool
}

// UnknownGroup is the sentinel key for demand with no known (asg, zone).
func UnknownGroup() GroupKey {
	return GroupKey{IsUnknown: true}
}

// NewGroupKey builds a concrete (asg, zone) key.
func NewGroupKey(asg, zone string) GroupKey {
	return GroupKey{ASG: asg, Zone: zone}
}

// String renders the key for logging; the sentinel prints as the original
// source's ("unknown", "unknown") pair for continuity with operator-facing
// log lines.
func (k GroupKey) String() string {
	if k.IsUnknown {
		return "(unknown, unknown)"
	}
	return "(" + k.ASG + ", " + k.Zone + ")"
}

// FleetSnapshot groups live nodes by (asg, zone). The sentinel key never
// appears here: only nodes successfully joined to a scaling group (C3) are
// members of a FleetSnapshot group.
type FleetSnapshot map[GroupKey][]NodeInfo

// UsageMap sums buffered-or-not demand by group, including the sentinel
// group for unattributed pods.
type UsageMap map[GroupKey]ResourceVector

// ASGInstance is one {instance_id, asg_name, zone} membership record from the
// cloud scaling-group API's DescribeAutoScalingInstances call.
type ASGInstance struct {
	InstanceID string
	ASGName    string
	Zone       string
}

// ASGBounds is the live state of one scaling group, fetched immediately
// before the resize applier (C7) decides whether to act.
type ASGBounds struct {
	Name            string
	CurrentDesired  int64
	Min             int64
	Max             int64
}
