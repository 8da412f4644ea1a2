package resize

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/stretchr/testify/assert"
)

type fakeAPI struct {
	groups            []autoscalingtypes.AutoScalingGroup
	setDesiredCalls   []autoscaling.SetDesiredCapacityInput
	describeCallCount int
	describeErr       error
	setErr            error
}

func (f *fakeAPI) DescribeAutoScalingGroups(_ context.Context, _ *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	f.describeCallCount++
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &autoscaling.DescribeAutoScalingGroupsOutput{AutoScalingGroups: f.groups}, nil
}

func (f *fakeAPI) SetDesiredCapacity(_ context.Context, params *autoscaling.SetDesiredCapacityInput, _ ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error) {
	if f.setErr != nil {
		return nil, f.setErr
	}
	f.setDesiredCalls = append(f.setDesiredCalls, *params)
	return &autoscaling.SetDesiredCapacityOutput{}, nil
}

func asg(name string, desired, min, max int32) autoscalingtypes.AutoScalingGroup {
	return autoscalingtypes.AutoScalingGroup{
		AutoScalingGroupName: aws.String(name),
		DesiredCapacity:      aws.Int32(desired),
		MinSize:              aws.Int32(min),
		MaxSize:              aws.Int32(max),
	}
}

func TestApplyEmptySizesDoesNothing(t *testing.T) {
	f := &fakeAPI{}
	err := Apply(context.Background(), f, map[string]int64{}, false)
	assert.NoError(t, err)
	assert.Zero(t, f.describeCallCount)
	assert.Empty(t, f.setDesiredCalls)
}

func TestApplyDownscale(t *testing.T) {
	f := &fakeAPI{groups: []autoscalingtypes.AutoScalingGroup{asg("asg1", 2, 1, 10)}}
	err := Apply(context.Background(), f, map[string]int64{"asg1": 1}, false)
	assert.NoError(t, err)
	assert.Equal(t, []autoscaling.SetDesiredCapacityInput{{
		AutoScalingGroupName: aws.String("asg1"),
		DesiredCapacity:      aws.Int32(1),
	}}, f.setDesiredCalls)
}

func TestApplyNoChangeIsNoop(t *testing.T) {
	f := &fakeAPI{groups: []autoscalingtypes.AutoScalingGroup{asg("asg1", 2, 1, 10)}}
	err := Apply(context.Background(), f, map[string]int64{"asg1": 2}, false)
	assert.NoError(t, err)
	assert.Empty(t, f.setDesiredCalls)
}

func TestApplyDryRunNeverWrites(t *testing.T) {
	f := &fakeAPI{groups: []autoscalingtypes.AutoScalingGroup{asg("asg1", 2, 1, 10)}}
	err := Apply(context.Background(), f, map[string]int64{"asg1": 1}, true)
	assert.NoError(t, err)
	assert.Empty(t, f.setDesiredCalls)
}

func TestApplyConstrainedByBoundsIsNoop(t *testing.T) {
	f := &fakeAPI{groups: []autoscalingtypes.AutoScalingGroup{asg("asg1", 2, 2, 2)}}

	err := Apply(context.Background(), f, map[string]int64{"asg1": 1}, false)
	assert.NoError(t, err)
	assert.Empty(t, f.setDesiredCalls)

	err = Apply(context.Background(), f, map[string]int64{"asg1": 3}, false)
	assert.NoError(t, err)
	assert.Empty(t, f.setDesiredCalls)
}

func TestApplyNoASGsIsNoop(t *testing.T) {
	f := &fakeAPI{groups: nil}
	err := Apply(context.Background(), f, map[string]int64{"asg1": 1}, false)
	assert.NoError(t, err)
	assert.Empty(t, f.setDesiredCalls)
}

func TestApplyClampsAboveMax(t *testing.T) {
	f := &fakeAPI{groups: []autoscalingtypes.AutoScalingGroup{asg("asg1", 2, 1, 5)}}
	err := Apply(context.Background(), f, map[string]int64{"asg1": 9}, false)
	assert.NoError(t, err)
	assert.Equal(t, []autoscaling.SetDesiredCapacityInput{{
		AutoScalingGroupName: aws.String("asg1"),
		DesiredCapacity:      aws.Int32(5),
	}}, f.setDesiredCalls)
}
