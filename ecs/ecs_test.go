package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r Registry
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				e := r.Create()
				require.True(t, e.Valid())
				ents = append(ents, e)
			}
			require.Equal(t, c.create, r.Len())
			if c.destroyIndex >= 0 {
				require.True(t, r.Destroy(ents[c.destroyIndex]))
				assert.False(t, r.IsAlive(ents[c.destroyIndex]))
				assert.False(t, r.Destroy(ents[c.destroyIndex]), "double destroy")
				assert.Equal(t, c.create-1, r.Len())
			}
		})
	}
}

func TestRegistryRecyclesWithNewGeneration(t *testing.T) {
	var r Registry
	a := r.Create()
	require.True(t, r.Destroy(a))
	b := r.Create()

	assert.Equal(t, a.id(), b.id())
	assert.NotEqual(t, a, b)
	assert.False(t, r.IsAlive(a))
	assert.True(t, r.IsAlive(b))
	assert.False(t, r.IsAlive(NoEntity))
}

func TestSparseSet(t *testing.T) {
	var r Registry
	var s SparseSet[string]

	e1, e2, e3 := r.Create(), r.Create(), r.Create()
	s.Set(e1, "a")
	s.Set(e2, "b")
	s.Set(e3, "c")
	s.Set(e2, "B")

	v, ok := s.Get(e2)
	require.True(t, ok)
	assert.Equal(t, "B", v)
	assert.Equal(t, 3, s.Len())

	require.True(t, s.Remove(e1))
	assert.False(t, s.Has(e1))
	v, ok = s.Get(e3)
	require.True(t, ok, "swap-remove keeps the moved entry addressable")
	assert.Equal(t, "c", v)

	p := s.Ptr(e3)
	require.NotNil(t, p)
	*p = "C"
	v, _ = s.Get(e3)
	assert.Equal(t, "C", v)

	seen := map[Entity]string{}
	s.Each(func(e Entity, v *string) { seen[e] = *v })
	assert.Equal(t, map[Entity]string{e2: "B", e3: "C"}, seen)
}

func TestSparseSetStaleHandle(t *testing.T) {
	var r Registry
	var s SparseSet[int]

	old := r.Create()
	s.Set(old, 1)
	r.Destroy(old)
	fresh := r.Create()

	assert.False(t, s.Has(fresh))
	s.Set(fresh, 2)
	assert.False(t, s.Has(old))
	assert.Equal(t, 1, s.Len())
	v, ok := s.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestEventQueue(t *testing.T) {
	var q EventQueue[int]
	assert.Nil(t, q.Drain())
	q.Push(1)
	q.Push(2)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []int{1, 2}, q.Drain())
	assert.Equal(t, 0, q.Len())
}

type recorder struct {
	log *[]string
	tag string
}

func (r recorder) Update(dt float64)      { *r.log = append(*r.log, r.tag) }
func (r recorder) FixedUpdate(dt float64) { *r.log = append(*r.log, r.tag+"-fixed") }

func TestSchedulerFixedStepsRunFirst(t *testing.T) {
	var log []string
	s := NewScheduler(0.02)
	s.Add(recorder{&log, "frame"})
	s.AddFixed(recorder{&log, "phys"})

	assert.Equal(t, 0, s.Step(0.01))
	assert.Equal(t, []string{"frame"}, log)

	log = nil
	assert.Equal(t, 2, s.Step(0.035))
	assert.Equal(t, []string{"phys-fixed", "phys-fixed", "frame"}, log)
	assert.InDelta(t, 0.045, s.Time(), 1e-12)
}

func TestSchedulerBoundsCatchUp(t *testing.T) {
	s := NewScheduler(0.02)
	assert.Equal(t, maxFixedSteps, s.Step(10))
	assert.Equal(t, 0, s.Step(0))
}
