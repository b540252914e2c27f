// Package voting picks the next scran to show a voter and records the
// outcome. Selection oversamples the least-voted approved scrans and
// filters out everything the voter has already seen, so the bias toward
// under-voted scrans is soft rather than a hard guarantee.
package voting

import (
	"fmt"
	"math/rand/v2"

	"scran-bot/internal/storage"
)

// DefaultPoolSize bounds the least-voted candidate pool fetched per
// selection.
const DefaultPoolSize = 50

type SelectionStore interface {
	ListVotedScranIDs(voterID string) (map[int64]struct{}, error)
	ListLeastVoted(limit int) ([]storage.Scran, error)
}

type VoteStore interface {
	RecordVote(voterID string, scranID int64, polarity storage.Polarity) error
}

// ParsePolarity maps a callback token to the closed polarity enum. An
// unknown token is a protocol error, not a domain one.
func ParsePolarity(token string) (storage.Polarity, error) {
	switch token {
	case string(storage.PolarityLike):
		return storage.PolarityLike, nil
	case string(storage.PolarityDislike):
		return storage.PolarityDislike, nil
	}
	return "", fmt.Errorf("voting: unknown polarity token %q", token)
}

type Selector struct {
	store    SelectionStore
	poolSize int
}

func NewSelector(store SelectionStore, poolSize int) *Selector {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &Selector{store: store, poolSize: poolSize}
}

// Next returns the next scran for the voter, or nil when every
// candidate has already been voted on (or none are approved yet).
func (s *Selector) Next(voterID string) (*storage.Scran, error) {
	voted, err := s.store.ListVotedScranIDs(voterID)
	if err != nil {
		return nil, fmt.Errorf("voting: could not load voted ids: %w", err)
	}
	pool, err := s.store.ListLeastVoted(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("voting: could not load candidates: %w", err)
	}

	candidates := pool[:0]
	for _, scran := range pool {
		if _, seen := voted[scran.ID]; !seen {
			candidates = append(candidates, scran)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	pick := candidates[rand.IntN(len(candidates))]
	return &pick, nil
}

type Recorder struct {
	store VoteStore
}

func NewRecorder(store VoteStore) *Recorder {
	return &Recorder{store: store}
}

// Record registers the vote. It returns storage.ErrAlreadyVoted
// unchanged when the voter already voted on this scran; the store
// guarantees no counter moves in that case.
func (r *Recorder) Record(voterID string, scranID int64, polarity storage.Polarity) error {
	return r.store.RecordVote(voterID, scranID, polarity)
}
