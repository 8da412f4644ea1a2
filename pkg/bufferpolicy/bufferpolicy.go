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

// Package bufferpolicy applies per-resource percentage and fixed headroom
// buffers to a demand vector (C5).
package bufferpolicy

import "github.com/kube-aws-autoscaler/autoscaler/pkg/model"

// Percentages maps a resource name to an integer percentage buffer (e.g. 10
// means +10%). A resource absent from the map defaults to 0%.
type Percentages map[string]float64

// Fixed maps a resource name to an absolute buffer added after the
// percentage buffer. A resource absent from the map defaults to 0.
type Fixed map[string]float64

// Apply returns a new vector where every resource present in v has been
// inflated by its percentage and fixed buffer:
//
//	buffered[r] = v[r] * (1 + bp[r]/100) + bf[r]
//
// v is never mutated.
func Apply(v model.ResourceVector, bp Percentages, bf Fixed) model.ResourceVector {
	out := make(model.ResourceVector, len(v))
	for resource, demand := range v {
		pct := bp[resource]
		fixed := bf[resource]
		out[resource] = demand*(1+pct/100) + fixed
	}
	return out
}
