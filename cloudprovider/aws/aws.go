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

// Package aws implements reconciler.CloudObserver and reconciler.CloudWriter
// against the real AWS Auto Scaling Group API.
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/pkg/errors"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/autoscalererrors"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/resize"
)

// API is the subset of the Auto Scaling client this package calls, so
// tests can provide an in-memory double. It extends resize.API with the
// instance-membership call C3 needs.
type API interface {
	resize.API
	DescribeAutoScalingInstances(ctx context.Context, params *autoscaling.DescribeAutoScalingInstancesInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingInstancesOutput, error)
}

// NewClient resolves AWS credentials via the SDK's default chain
// (environment, shared config, or EC2 instance role) and returns a ready
// Auto Scaling client. Credential discovery internals are the SDK's
// responsibility, not reimplemented here.
func NewClient(ctx context.Context) (*autoscaling.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading default AWS config")
	}
	return autoscaling.NewFromConfig(cfg), nil
}

// CloudObserver implements reconciler.CloudObserver: it lists every
// instance currently registered to any Auto Scaling group.
type CloudObserver struct {
	Client API
}

// NewCloudObserver wraps client as a CloudObserver.
func NewCloudObserver(client API) *CloudObserver {
	return &CloudObserver{Client: client}
}

// DescribeInstances pages through DescribeAutoScalingInstances and returns
// every {instance_id, asg_name, zone} membership record.
func (o *CloudObserver) DescribeInstances(ctx context.Context) ([]model.ASGInstance, error) {
	var out []model.ASGInstance
	var nextToken *string
	for {
		resp, err := o.Client.DescribeAutoScalingInstances(ctx, &autoscaling.DescribeAutoScalingInstancesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, autoscalererrors.NewExternalUnavailableError("describe auto scaling instances", err)
		}
		for _, inst := range resp.AutoScalingInstances {
			out = append(out, model.ASGInstance{
				InstanceID: awssdk.ToString(inst.InstanceId),
				ASGName:    awssdk.ToString(inst.AutoScalingGroupName),
				Zone:       awssdk.ToString(inst.AvailabilityZone),
			})
		}
		if resp.NextToken == nil {
			break
		}
		nextToken = resp.NextToken
	}
	return out, nil
}

// CloudWriter implements reconciler.CloudWriter by delegating to
// pkg/resize.Apply against the same client.
type CloudWriter struct {
	Client API
}

// NewCloudWriter wraps client as a CloudWriter.
func NewCloudWriter(client API) *CloudWriter {
	return &CloudWriter{Client: client}
}

// Apply clamps and applies sizes; see pkg/resize.Apply.
func (w *CloudWriter) Apply(ctx context.Context, sizes map[string]int64, dryRun bool) autoscalererrors.AutoscalerError {
	return resize.Apply(ctx, w.Client, sizes, dryRun)
}
