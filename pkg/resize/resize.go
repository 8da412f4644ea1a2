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

// Package resize clamps the solver's required sizes to each scaling group's
// live bounds and issues set-desired-capacity calls (C7).
package resize

import (
	"context"
	goerrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/autoscalererrors"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
)

// apiErrorCode extracts the AWS error code from err if it is (or wraps) a
// smithy API error, so callers can tell a throttling response apart from a
// genuine fault without string-matching Error().
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if goerrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// API abstracts the subset of the AWS Auto Scaling client this package
// calls, so tests can provide an in-memory double instead of a live client.
type API interface {
	DescribeAutoScalingGroups(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
	SetDesiredCapacity(ctx context.Context, params *autoscaling.SetDesiredCapacityInput, optFns ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error)
}

// Apply clamps every ASG's required size from sizes to [MinSize, MaxSize],
// compares against the ASG's live DesiredCapacity, and calls
// SetDesiredCapacity when the clamped value differs. In dryRun mode it logs
// the intended change and performs no write. An ASG in sizes that no longer
// exists in the cloud (DescribeAutoScalingGroups omits it) is skipped with a
// warning: it may have been deleted since C3 observed it.
func Apply(ctx context.Context, api API, sizes map[string]int64, dryRun bool) autoscalererrors.AutoscalerError {
	if len(sizes) == 0 {
		return nil
	}

	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}

	out, err := api.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: names,
	})
	if err != nil {
		if code := apiErrorCode(err); code != "" {
			klog.Warningf("resize: describe auto scaling groups failed with AWS error code %s", code)
		}
		return autoscalererrors.NewExternalUnavailableError("describe auto scaling groups", errors.Wrap(err, "resize"))
	}

	bounds := make(map[string]model.ASGBounds, len(out.AutoScalingGroups))
	for _, g := range out.AutoScalingGroups {
		name := aws.ToString(g.AutoScalingGroupName)
		bounds[name] = model.ASGBounds{
			Name:           name,
			CurrentDesired: int64(aws.ToInt32(g.DesiredCapacity)),
			Min:            int64(aws.ToInt32(g.MinSize)),
			Max:            int64(aws.ToInt32(g.MaxSize)),
		}
	}

	for name, desiredNew := range sizes {
		b, ok := bounds[name]
		if !ok {
			klog.Warningf("resize: asg %s not found in DescribeAutoScalingGroups, skipping", name)
			continue
		}
		if err := applyOne(ctx, api, b, desiredNew, dryRun); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(ctx context.Context, api API, b model.ASGBounds, desiredNew int64, dryRun bool) autoscalererrors.AutoscalerError {
	clamped := clamp(desiredNew, b.Min, b.Max)

	if clamped == b.CurrentDesired {
		klog.V(1).Infof("resize: asg %s already at desired capacity %d, no-op", b.Name, clamped)
		return nil
	}

	if clamped != desiredNew {
		klog.Warningf("resize: asg %s required size %d constrained to %d by bounds [%d,%d]", b.Name, desiredNew, clamped, b.Min, b.Max)
	}

	if dryRun {
		klog.Infof("resize: dry-run, would set asg %s desired capacity %d -> %d", b.Name, b.CurrentDesired, clamped)
		return nil
	}

	klog.Infof("resize: setting asg %s desired capacity %d -> %d", b.Name, b.CurrentDesired, clamped)
	_, err := api.SetDesiredCapacity(ctx, &autoscaling.SetDesiredCapacityInput{
		AutoScalingGroupName: aws.String(b.Name),
		DesiredCapacity:      aws.Int32(int32(clamped)),
	})
	if err != nil {
		if code := apiErrorCode(err); code != "" {
			klog.Warningf("resize: set desired capacity on asg %s failed with AWS error code %s", b.Name, code)
		}
		return autoscalererrors.NewExternalUnavailableError("set desired capacity", errors.Wrapf(err, "asg %s", b.Name))
	}
	return nil
}

func clamp(v, min, max int64) int64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
