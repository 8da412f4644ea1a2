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
	ctx "context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	awscloud "github.com/kube-aws-autoscaler/autoscaler/cloudprovider/aws"
	"github.com/kube-aws-autoscaler/autoscaler/cloudprovider/kube"
	"github.com/kube-aws-autoscaler/autoscaler/config"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/bufferpolicy"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/reconciler"
	"github.com/kube-aws-autoscaler/autoscaler/pkg/sizing"
)

var (
	once                   = pflag.Bool("once", false, "Run a single reconciliation pass and exit")
	dryRun                 = pflag.Bool("dry-run", false, "Observe and compute, but never call set-desired-capacity")
	scanInterval           = pflag.Duration("scan-interval", config.DefaultScanInterval, "How often the cluster is reevaluated")
	kubeConfigFile         = pflag.String("kubeconfig", "", "Path to kubeconfig file, overriding in-cluster/~/.kube/config credential resolution")
	sentinelDistribution   = pflag.String("sentinel-distribution", string(config.SentinelDistributionReplicate), "How unattributed demand is folded into sizing: replicate or split")
	bufferCPUPercentage    = pflag.Int("buffer-cpu-percentage", config.DefaultBufferCPUPercentage, "Percentage headroom buffer applied to cpu demand")
	bufferMemoryPercentage = pflag.Int("buffer-memory-percentage", config.DefaultBufferMemoryPercentage, "Percentage headroom buffer applied to memory demand")
	bufferPodsPercentage   = pflag.Int("buffer-pods-percentage", config.DefaultBufferPodsPercentage, "Percentage headroom buffer applied to pod count")
	bufferCPUFixed         = pflag.Float64("buffer-cpu-fixed", config.DefaultBufferCPUFixed, "Fixed headroom buffer, in cores, added to cpu demand")
	bufferMemoryFixed      = pflag.Float64("buffer-memory-fixed", config.DefaultBufferMemoryFixed, "Fixed headroom buffer, in bytes, added to memory demand")
	bufferPodsFixed        = pflag.Float64("buffer-pods-fixed", config.DefaultBufferPodsFixed, "Fixed headroom buffer added to pod count")
)

func createAutoscalingOptions() config.AutoscalingOptions {
	opts := config.NewDefaultAutoscalingOptions()
	opts.Once = *once
	opts.DryRun = *dryRun
	opts.ScanInterval = *scanInterval
	opts.KubeConfigPath = *kubeConfigFile
	opts.SentinelDistribution = config.SentinelDistributionName(*sentinelDistribution)
	opts.BufferCPUPercentage = float64(*bufferCPUPercentage)
	opts.BufferMemoryPercentage = float64(*bufferMemoryPercentage)
	opts.BufferPodsPercentage = float64(*bufferPodsPercentage)
	opts.BufferCPUFixed = *bufferCPUFixed
	opts.BufferMemoryFixed = *bufferMemoryFixed
	opts.BufferPodsFixed = *bufferPodsFixed
	return opts
}

func reconcilerConfig(opts config.AutoscalingOptions) (reconciler.Config, error) {
	var dist sizing.SentinelDistribution
	switch opts.SentinelDistribution {
	case config.SentinelDistributionReplicate, "":
		dist = sizing.DistributeReplicate
	case config.SentinelDistributionSplit:
		dist = sizing.DistributeSplit
	default:
		return reconciler.Config{}, invalidSentinelDistributionError(opts.SentinelDistribution)
	}

	return reconciler.Config{
		Percentages: bufferpolicy.Percentages{
			"cpu":    opts.BufferCPUPercentage,
			"memory": opts.BufferMemoryPercentage,
			"pods":   opts.BufferPodsPercentage,
		},
		Fixed: bufferpolicy.Fixed{
			"cpu":    opts.BufferCPUFixed,
			"memory": opts.BufferMemoryFixed,
			"pods":   opts.BufferPodsFixed,
		},
		SentinelDistribution: dist,
		DryRun:               opts.DryRun,
	}, nil
}

func invalidSentinelDistributionError(v config.SentinelDistributionName) error {
	return fmt.Errorf("invalid --sentinel-distribution %q: must be %q or %q", v, config.SentinelDistributionReplicate, config.SentinelDistributionSplit)
}

func buildReconciler(opts config.AutoscalingOptions) (*reconciler.Reconciler, error) {
	cfg, err := reconcilerConfig(opts)
	if err != nil {
		return nil, err
	}

	kubeConfig, err := kube.GetConfig(opts.KubeConfigPath)
	if err != nil {
		return nil, err
	}
	kubeClient, err := kube.NewClient(kubeConfig)
	if err != nil {
		return nil, err
	}

	awsClient, err := awscloud.NewClient(ctx.Background())
	if err != nil {
		return nil, err
	}

	return reconciler.New(
		kube.NewClusterObserver(kubeClient),
		awscloud.NewCloudObserver(awsClient),
		awscloud.NewCloudWriter(awsClient),
		cfg,
	), nil
}

func registerSignalHandlers(cancel ctx.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	klog.V(1).Info("registered cleanup signal handler")

	go func() {
		<-sigs
		klog.V(1).Info("received signal, shutting down")
		cancel()
	}()
}

func run(r *reconciler.Reconciler, opts config.AutoscalingOptions, runCtx ctx.Context) int {
	// Passes get a context that shutdown does not cancel, so an in-flight
	// pass finishes its external calls; runCtx is only checked between passes.
	passCtx := ctx.Background()
	if opts.Once {
		if err := r.RunOnce(passCtx); err != nil {
			klog.Errorf("reconciliation pass failed: %v", err)
			return 1
		}
		return 0
	}

	for {
		select {
		case <-runCtx.Done():
			klog.V(1).Info("shutdown requested, exiting")
			return 0
		case <-time.After(opts.ScanInterval):
			if err := r.RunOnce(passCtx); err != nil {
				klog.Errorf("reconciliation pass failed: %v", err)
			}
		}
	}
}

func main() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	pflag.CommandLine.AddGoFlagSet(klogFlags)
	pflag.Parse()

	opts := createAutoscalingOptions()

	r, err := buildReconciler(opts)
	if err != nil {
		klog.Fatalf("failed to build reconciler: %v", err)
	}

	runCtx, cancel := ctx.WithCancel(ctx.Background())
	registerSignalHandlers(cancel)

	os.Exit(run(r, opts, runCtx))
}
