package bufferpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
)

func TestApplyNoBuffers(t *testing.T) {
	v := model.ResourceVector{"foo": 1}
	got := Apply(v, Percentages{}, Fixed{})
	assert.Equal(t, model.ResourceVector{"foo": 1}, got)
}

func TestApplyPercentageOnly(t *testing.T) {
	v := model.ResourceVector{"foo": 1}
	got := Apply(v, Percentages{"foo": 10}, Fixed{})
	assert.InDelta(t, 1.1, got["foo"], 1e-9)
}

func TestApplyPercentageAndFixed(t *testing.T) {
	v := model.ResourceVector{"foo": 1}
	got := Apply(v, Percentages{"foo": 10}, Fixed{"foo": 0.01})
	assert.InDelta(t, 1.11, got["foo"], 1e-9)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	v := model.ResourceVector{"foo": 1}
	_ = Apply(v, Percentages{"foo": 50}, Fixed{"foo": 1})
	assert.Equal(t, model.ResourceVector{"foo": 1}, v)
}

func TestApplyMissingResourceDefaultsToZero(t *testing.T) {
	v := model.ResourceVector{"cpu": 2, "memory": 10}
	got := Apply(v, Percentages{"cpu": 10}, Fixed{"memory": 5})
	assert.InDelta(t, 2.2, got["cpu"], 1e-9)
	assert.InDelta(t, 15, got["memory"], 1e-9)
}
