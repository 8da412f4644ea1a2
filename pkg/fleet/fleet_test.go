package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kube-aws-autoscaler/autoscaler/pkg/model"
)

func TestJoin(t *testing.T) {
	nodes := map[string]model.NodeInfo{
		"foo": {Name: "foo", InstanceID: "i-1"},
		"bar": {Name: "bar", InstanceID: "i-unmanaged"},
	}
	instances := []model.ASGInstance{
		{InstanceID: "i-1", ASGName: "myasg", Zone: "myaz"},
	}

	got := Join(nodes, instances)

	key := model.NewGroupKey("myasg", "myaz")
	assert.Len(t, got, 1)
	assert.Len(t, got[key], 1)
	assert.Equal(t, "foo", got[key][0].Name)
	assert.Equal(t, "myasg", got[key][0].ASGName)
}

func TestJoinEmpty(t *testing.T) {
	got := Join(map[string]model.NodeInfo{}, nil)
	assert.Empty(t, got)
}

func TestNodeNameToGroup(t *testing.T) {
	key := model.NewGroupKey("a1", "z1")
	snapshot := model.FleetSnapshot{
		key: {{Name: "n1"}, {Name: "n2"}},
	}
	got := NodeNameToGroup(snapshot)
	assert.Equal(t, key, got["n1"])
	assert.Equal(t, key, got["n2"])
	_, ok := got["n3"]
	assert.False(t, ok)
}
