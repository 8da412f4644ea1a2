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

package model

import "testing"

func TestSufficientAllResourcesWithinNeed(t *testing.T) {
	have := ResourceVector{ResourceCPU: 1, ResourceMemory: 2}
	need := ResourceVector{ResourceCPU: 1, ResourceMemory: 4}
	if !Sufficient(have, need) {
		t.Fatal("expected sufficient")
	}
}

func TestSufficientOneResourceExceedsNeed(t *testing.T) {
	have := ResourceVector{ResourceCPU: 5, ResourceMemory: 2}
	need := ResourceVector{ResourceCPU: 1, ResourceMemory: 4}
	if Sufficient(have, need) {
		t.Fatal("expected insufficient")
	}
}

func TestSufficientMissingKeyTreatedAsZero(t *testing.T) {
	have := ResourceVector{ResourceCPU: 0}
	need := ResourceVector{ResourceMemory: 4}
	if !Sufficient(have, need) {
		t.Fatal("expected sufficient: absent keys default to 0 on both sides")
	}
}

func TestSufficientExactEquality(t *testing.T) {
	have := ResourceVector{ResourceCPU: 3}
	need := ResourceVector{ResourceCPU: 3}
	if !Sufficient(have, need) {
		t.Fatal("expected sufficient: equal values satisfy <=")
	}
}

func TestGroupKeyStringRendersSentinel(t *testing.T) {
	if got, want := UnknownGroup().String(), "(unknown, unknown)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGroupKeyStringRendersConcrete(t *testing.T) {
	key := NewGroupKey("asg1", "z1")
	if got, want := key.String(), "(asg1, z1)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResourceVectorAddDoesNotMutateOperands(t *testing.T) {
	a := ResourceVector{ResourceCPU: 1}
	b := ResourceVector{ResourceCPU: 2}
	sum := a.Add(b)

	if a[ResourceCPU] != 1 || b[ResourceCPU] != 2 {
		t.Fatal("Add must not mutate its operands")
	}
	if sum[ResourceCPU] != 3 {
		t.Fatalf("got sum %v, want cpu=3", sum)
	}
}
