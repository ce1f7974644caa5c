package bt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct{ ticks []string }

func record(name string, result Status) Node {
	return &Action{Do: func(bb Blackboard) Status {
		c := bb.(*counter)
		c.ticks = append(c.ticks, name)
		return result
	}}
}

func TestSelectorStopsAtFirstNonFailure(t *testing.T) {
	c := &counter{}
	tree := &Selector{Children: []Node{
		record("a", StatusFailure),
		record("b", StatusRunning),
		record("c", StatusSuccess),
	}}
	assert.Equal(t, StatusRunning, tree.Tick(c))
	assert.Equal(t, []string{"a", "b"}, c.ticks)
}

func TestSequenceStopsAtFirstNonSuccess(t *testing.T) {
	c := &counter{}
	tree := &Sequence{Children: []Node{
		record("a", StatusSuccess),
		record("b", StatusFailure),
		record("c", StatusSuccess),
	}}
	assert.Equal(t, StatusFailure, tree.Tick(c))
	assert.Equal(t, []string{"a", "b"}, c.ticks)
}

func TestConditionAndInverter(t *testing.T) {
	yes := &Condition{Check: func(Blackboard) bool { return true }}
	assert.Equal(t, StatusSuccess, yes.Tick(nil))
	assert.Equal(t, StatusFailure, (&Inverter{Child: yes}).Tick(nil))
	assert.Equal(t, StatusFailure, (&Condition{}).Tick(nil))
	assert.Equal(t, StatusFailure, (&Action{}).Tick(nil))
	assert.Equal(t, StatusRunning, (&Inverter{Child: record("r", StatusRunning)}).Tick(&counter{}))
}
