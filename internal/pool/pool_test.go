package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResettable struct {
	Value       int
	ResetCalled int
}

func (m *mockResettable) Reset() {
	m.Value = 0
	m.ResetCalled++
}

func TestPoolGet_EmptyPoolAllocates(t *testing.T) {
	allocated := 0
	p := New(func() *mockResettable {
		allocated++
		return &mockResettable{Value: 7}
	})

	item := p.Get()
	require.NotNil(t, item)
	assert.Equal(t, 7, item.Value)
	assert.Equal(t, 1, allocated)
}

func TestPoolPut_ResetsItem(t *testing.T) {
	p := New(func() *mockResettable { return &mockResettable{} })

	obj := &mockResettable{Value: 100}
	p.Put(obj)

	assert.Equal(t, 1, obj.ResetCalled)
	assert.Equal(t, 0, obj.Value)
}

func TestPool_Buffers(t *testing.T) {
	p := New(func() *bytes.Buffer { return new(bytes.Buffer) })

	buf := p.Get()
	buf.WriteString("payload")
	p.Put(buf)

	assert.Equal(t, 0, buf.Len())

	next := p.Get()
	require.NotNil(t, next)
	assert.Equal(t, 0, next.Len())
}
