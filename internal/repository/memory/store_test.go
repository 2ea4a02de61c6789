package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/baseline-api/internal/model"
)

func ids(users []model.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore(SeedUsers()...)

	assert.Equal(t, []string{"1", "2", "3"}, ids(s.List()))
	assert.Equal(t, 3, s.Len())

	require.True(t, s.Delete("2"))
	assert.Equal(t, []string{"1", "3"}, ids(s.List()))

	u, ok := s.Get("3")
	require.True(t, ok)
	u.Department = "Cardiology"
	require.True(t, s.Replace("3", u))
	assert.Equal(t, []string{"1", "3"}, ids(s.List()))

	got, _ := s.Get("3")
	assert.Equal(t, "Cardiology", got.Department)
}

func TestStoreMissingRecords(t *testing.T) {
	s := NewStore[model.User]()

	_, ok := s.Get("1")
	assert.False(t, ok)
	assert.False(t, s.Replace("1", model.User{ID: "1"}))
	assert.False(t, s.Delete("1"))
	assert.Empty(t, s.List())
}

func TestStoreRejectsDuplicateIDs(t *testing.T) {
	s := NewStore(SeedUsers()...)

	err := s.Insert(model.User{ID: "1"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 3, s.Len())
}

func TestNextIDNeverReuses(t *testing.T) {
	s := NewStore(SeedPatients(fixedTime)...)

	assert.Equal(t, "5", s.NextID())

	require.NoError(t, s.Insert(model.Patient{ID: "6"}))
	require.True(t, s.Delete("6"))

	assert.Equal(t, "7", s.NextID())
}

func TestNextIDSkipsExistingIDs(t *testing.T) {
	s := NewStore[model.User]()
	require.NoError(t, s.Insert(model.User{ID: "abc"}))

	first := s.NextID()
	require.NoError(t, s.Insert(model.User{ID: first}))
	assert.Equal(t, "1", first)
	assert.Equal(t, "2", s.NextID())
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	s := NewStore(SeedPatients(fixedTime)...)

	list := s.List()
	list[0].Name = "Mutated"
	list[0].Allergies[0] = "Mutated"

	p, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, []string{"Penicillin"}, p.Allergies)
}

func TestStoreConcurrentInserts(t *testing.T) {
	s := NewStore[model.User]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := s.NextID()
			assert.NoError(t, s.Insert(model.User{ID: id, Username: fmt.Sprintf("user%d", n)}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
