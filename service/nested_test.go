package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrependPutsNewestFirst(t *testing.T) {
	list := prepend([]string{}, "a")
	list = prepend(list, "b")
	list = prepend(list, "c")

	assert.Equal(t, []string{"c", "b", "a"}, list)
}

func TestRemoveAtKeepsOrder(t *testing.T) {
	list := []int{1, 2, 3, 4}

	assert.Equal(t, []int{1, 3, 4}, removeAt(list, 1))
	assert.Equal(t, []int{2, 3, 4}, removeAt(list, 0))
	assert.Equal(t, []int{1, 2, 3}, removeAt(list, 3))
	assert.Equal(t, []int{1, 2, 3, 4}, list)
}

func TestIndexOf(t *testing.T) {
	list := []string{"x", "y"}

	assert.Equal(t, 1, indexOf(list, func(s string) bool { return s == "y" }))
	assert.Equal(t, -1, indexOf(list, func(s string) bool { return s == "z" }))
}
