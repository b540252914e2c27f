package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scran-bot/internal/storage"
)

func newTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.NewStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func addApproved(t *testing.T, s *storage.Storage, name string) int64 {
	t.Helper()
	id, err := s.InsertScran("ref://"+name, name, nil, 100, "submitter")
	require.NoError(t, err)
	require.NoError(t, s.SetApproved(id))
	return id
}

func TestParsePolarity(t *testing.T) {
	p, err := ParsePolarity("like")
	require.NoError(t, err)
	assert.Equal(t, storage.PolarityLike, p)

	p, err = ParsePolarity("dislike")
	require.NoError(t, err)
	assert.Equal(t, storage.PolarityDislike, p)

	_, err = ParsePolarity("meh")
	assert.Error(t, err)
	_, err = ParsePolarity("")
	assert.Error(t, err)
}

func TestSelectorSkipsVotedScrans(t *testing.T) {
	store := newTestStore(t)
	a := addApproved(t, store, "A")
	b := addApproved(t, store, "B")
	c := addApproved(t, store, "C")

	require.NoError(t, store.RecordVote("voter", a, storage.PolarityLike))
	require.NoError(t, store.RecordVote("voter", b, storage.PolarityDislike))

	selector := NewSelector(store, 50)
	// Selection is randomized; every draw must land on the one unvoted
	// scran.
	for i := 0; i < 20; i++ {
		scran, err := selector.Next("voter")
		require.NoError(t, err)
		require.NotNil(t, scran)
		assert.Equal(t, c, scran.ID)
	}
}

func TestSelectorExhaustion(t *testing.T) {
	store := newTestStore(t)
	a := addApproved(t, store, "A")
	b := addApproved(t, store, "B")

	selector := NewSelector(store, 50)

	require.NoError(t, store.RecordVote("voter", a, storage.PolarityLike))
	require.NoError(t, store.RecordVote("voter", b, storage.PolarityLike))

	scran, err := selector.Next("voter")
	require.NoError(t, err)
	assert.Nil(t, scran, "a voter who rated everything gets nothing")

	// Other voters are unaffected.
	scran, err = selector.Next("other")
	require.NoError(t, err)
	assert.NotNil(t, scran)
}

func TestSelectorNoApprovedScrans(t *testing.T) {
	store := newTestStore(t)
	_, err := store.InsertScran("ref", "Pending", nil, 100, "submitter")
	require.NoError(t, err)

	selector := NewSelector(store, 50)
	scran, err := selector.Next("voter")
	require.NoError(t, err)
	assert.Nil(t, scran, "unapproved scrans are never served")
}

func TestSelectorPrefersLeastVoted(t *testing.T) {
	store := newTestStore(t)
	popular := addApproved(t, store, "Popular")
	fresh := addApproved(t, store, "Fresh")

	require.NoError(t, store.RecordVote("v1", popular, storage.PolarityLike))
	require.NoError(t, store.RecordVote("v2", popular, storage.PolarityLike))

	// With a pool of one, only the least-voted scran is drawn.
	selector := NewSelector(store, 1)
	for i := 0; i < 10; i++ {
		scran, err := selector.Next("voter")
		require.NoError(t, err)
		require.NotNil(t, scran)
		assert.Equal(t, fresh, scran.ID)
	}
}

func TestRecorderDuplicateVote(t *testing.T) {
	store := newTestStore(t)
	id := addApproved(t, store, "A")

	recorder := NewRecorder(store)
	require.NoError(t, recorder.Record("voter", id, storage.PolarityLike))

	err := recorder.Record("voter", id, storage.PolarityDislike)
	assert.ErrorIs(t, err, storage.ErrAlreadyVoted)

	scran, err := store.GetScran(id)
	require.NoError(t, err)
	assert.Equal(t, 1, scran.LikeCount)
	assert.Equal(t, 0, scran.DislikeCount)
}

func TestVoteThenSelectNeverRepeats(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"A", "B", "C", "D"} {
		addApproved(t, store, name)
	}

	selector := NewSelector(store, 50)
	recorder := NewRecorder(store)

	seen := make(map[int64]bool)
	for {
		scran, err := selector.Next("voter")
		require.NoError(t, err)
		if scran == nil {
			break
		}
		assert.False(t, seen[scran.ID], "selection returned an already voted scran")
		seen[scran.ID] = true
		require.NoError(t, recorder.Record("voter", scran.ID, storage.PolarityLike))
	}
	assert.Len(t, seen, 4)
}
