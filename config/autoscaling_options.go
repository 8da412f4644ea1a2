/*
Copyright 2018 The Kubernetes Authors.

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

package config

import "time"

// Default buffer values, bit-exact with the source this controller
// reimplements: a 10% headroom on every resource, plus a fixed allowance of
// one-fifth of a core, 200 MiB, and 10 pods.
const (
	DefaultBufferCPUPercentage    = 10
	DefaultBufferMemoryPercentage = 10
	DefaultBufferPodsPercentage   = 10

	DefaultBufferCPUFixed    = 0.2
	DefaultBufferMemoryFixed = 200 * 1024 * 1024
	DefaultBufferPodsFixed   = 10

	// DefaultScanInterval is how long the outer loop sleeps between
	// reconciliation passes when not running with --once.
	DefaultScanInterval = 60 * time.Second
)

// SentinelDistributionName identifies a sizing.SentinelDistribution
// strategy by its CLI-facing flag value.
type SentinelDistributionName string

const (
	// SentinelDistributionReplicate is the conservative default: the
	// sentinel demand vector is added in full to every live group.
	SentinelDistributionReplicate SentinelDistributionName = "replicate"
	// SentinelDistributionSplit divides the sentinel demand evenly across
	// live groups instead.
	SentinelDistributionSplit SentinelDistributionName = "split"
)

// AutoscalingOptions holds the reconciler's per-pass configuration, built
// once from CLI flags and passed explicitly into every pass; there is no
// global state shared between passes.
type AutoscalingOptions struct {
	// Once runs a single reconciliation pass and exits instead of looping.
	Once bool
	// DryRun observes and computes required sizes but never calls
	// set-desired-capacity.
	DryRun bool
	// ScanInterval is the sleep between passes when not running with Once.
	ScanInterval time.Duration

	// BufferCPUPercentage, BufferMemoryPercentage, BufferPodsPercentage are
	// the per-resource percentage headroom buffers (C5).
	BufferCPUPercentage    float64
	BufferMemoryPercentage float64
	BufferPodsPercentage   float64

	// BufferCPUFixed, BufferMemoryFixed, BufferPodsFixed are the
	// per-resource fixed headroom buffers (C5), added after the percentage
	// buffer.
	BufferCPUFixed    float64
	BufferMemoryFixed float64
	BufferPodsFixed   float64

	// SentinelDistribution selects how unattributed ("unknown") demand is
	// folded into the per-group sizing computation (C6).
	SentinelDistribution SentinelDistributionName

	// KubeConfigPath overrides the in-cluster/~/.kube/config credential
	// resolution default when non-empty.
	KubeConfigPath string
}

// NewDefaultAutoscalingOptions returns the bit-exact defaults this
// controller must match: percentage buffers {cpu:10, memory:10, pods:10},
// fixed buffers {cpu:0.2, memory:209715200, pods:10}.
func NewDefaultAutoscalingOptions() AutoscalingOptions {
	return AutoscalingOptions{
		ScanInterval:           DefaultScanInterval,
		BufferCPUPercentage:    DefaultBufferCPUPercentage,
		BufferMemoryPercentage: DefaultBufferMemoryPercentage,
		BufferPodsPercentage:   DefaultBufferPodsPercentage,
		BufferCPUFixed:         DefaultBufferCPUFixed,
		BufferMemoryFixed:      DefaultBufferMemoryFixed,
		BufferPodsFixed:        DefaultBufferPodsFixed,
		SentinelDistribution:   SentinelDistributionReplicate,
	}
}
