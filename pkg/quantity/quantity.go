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

// Package quantity parses the cluster's resource-quantity grammar ("100Mi",
// "1m", "2") into plain float64 values, the way the rest of this module's
// ResourceVector arithmetic expects.
package quantity

import (
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/autoscalererrors"
)

// Parse decodes a quantity string ("100Mi", "1m", "2", "1.5") into its
// numeric value. Binary suffixes (Ki, Mi, Gi, Ti, Pi, Ei) and decimal
// suffixes (K, M, G, T, P, E) scale as their SI/IEC meaning dictates; the
// "m" milli suffix scales by 10^-3 (e.g. "1m" -> 0.001), and a plain
// decimal such as "0.5" also yields a fractional result. Parsing is one-way: the
// result is not guaranteed to round-trip back to the original string.
func Parse(raw string) (float64, autoscalererrors.AutoscalerError) {
	q, err := resource.ParseQuantity(raw)
	if err != nil {
		return 0, autoscalererrors.NewInvalidQuantityError(raw, err)
	}
	return q.AsApproximateFloat64(), nil
}

// MustParse is Parse for callers (tests, defaults) that already know the
// input is well-formed; it panics otherwise.
func MustParse(raw string) float64 {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}
