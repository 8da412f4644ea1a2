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

package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/kube-aws-autoscaler/autoscaler/config"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/bufferpolicy"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/sizing"
)

// TestCreateAutoscalingOptionsOnceDryRunDefaults reproduces the original
// source's test_main (S6): "--once --dry-run" parses into the bit-exact
// default buffers {cpu:10, memory:10, pods:10} / {cpu:0.2, memory:209715200,
// pods:10} and a single dry-run pass.
func TestCreateAutoscalingOptionsOnceDryRunDefaults(t *testing.T) {
	t.Cleanup(func() {
		*once, *dryRun = false, false
	})

	require := assert.New(t)
	require.NoError(pflag.CommandLine.Parse([]string{"--once", "--dry-run"}))

	opts := createAutoscalingOptions()
	require.True(opts.Once)
	require.True(opts.DryRun)
	require.Equal(float64(config.DefaultBufferCPUPercentage), opts.BufferCPUPercentage)
	require.Equal(float64(config.DefaultBufferMemoryPercentage), opts.BufferMemoryPercentage)
	require.Equal(float64(config.DefaultBufferPodsPercentage), opts.BufferPodsPercentage)
	require.Equal(float64(config.DefaultBufferCPUFixed), opts.BufferCPUFixed)
	require.Equal(float64(config.DefaultBufferMemoryFixed), opts.BufferMemoryFixed)
	require.Equal(float64(config.DefaultBufferPodsFixed), opts.BufferPodsFixed)
	require.Equal(config.SentinelDistributionReplicate, opts.SentinelDistribution)

	cfg, err := reconcilerConfig(opts)
	require.NoError(err)
	require.Equal(bufferpolicy.Percentages{"cpu": 10, "memory": 10, "pods": 10}, cfg.Percentages)
	require.Equal(bufferpolicy.Fixed{"cpu": 0.2, "memory": 209715200, "pods": 10}, cfg.Fixed)
	require.Equal(sizing.DistributeReplicate, cfg.SentinelDistribution)
	require.True(cfg.DryRun)
}

func TestReconcilerConfigRejectsUnknownSentinelDistribution(t *testing.T) {
	opts := config.NewDefaultAutoscalingOptions()
	opts.SentinelDistribution = "bogus"

	_, err := reconcilerConfig(opts)
	assert.Error(t, err)
}

func TestReconcilerConfigDefaultsSentinelDistributionWhenUnset(t *testing.T) {
	opts := config.NewDefaultAutoscalingOptions()
	opts.SentinelDistribution = ""

	cfg, err := reconcilerConfig(opts)
	assert.NoError(t, err)
	assert.Equal(t, sizing.DistributeReplicate, cfg.SentinelDistribution)
}
