package core

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/server/store"
	"github.com/automoto/kickoff/shared/netconfig"
)

// EpisodeSink persists finished episodes. The gorm repository and the
// gdata scoreboard both implement it.
type EpisodeSink interface {
	SaveEpisode(ctx context.Context, e store.Episode) error
}

// ResultLog keeps the latest episode results in memory and hands them to
// the sinks on a background goroutine, so the tick never waits on disk.
type ResultLog struct {
	mu     sync.RWMutex
	recent []store.Episode
	limit  int

	queue chan store.Episode
	sinks []EpisodeSink
	done  chan struct{}
}

func NewResultLog(limit int, sinks ...EpisodeSink) *ResultLog {
	if limit <= 0 {
		limit = 1
	}
	return &ResultLog{
		limit: limit,
		queue: make(chan store.Episode, 64),
		sinks: sinks,
		done:  make(chan struct{}),
	}
}

// Add records r. It never blocks; when the writer falls behind the result
// is kept in memory only.
func (l *ResultLog) Add(matchID string, r soccer.EpisodeResult) {
	e := store.Episode{
		MatchID:      matchID,
		Number:       r.Number,
		Reason:       r.Reason.String(),
		Steps:        r.Steps,
		BlueReward:   r.Rewards[netconfig.TeamBlue],
		PurpleReward: r.Rewards[netconfig.TeamPurple],
		BlueScore:    r.Blue,
		PurpleScore:  r.Purple,
		EndedAt:      time.Now().UTC(),
	}
	if r.Reason == soccer.EndGoal {
		e.Scorer = r.Scorer.String()
	}

	l.mu.Lock()
	l.recent = append(l.recent, e)
	if len(l.recent) > l.limit {
		l.recent = append(l.recent[:0:0], l.recent[len(l.recent)-l.limit:]...)
	}
	l.mu.Unlock()

	if len(l.sinks) == 0 {
		return
	}
	select {
	case l.queue <- e:
	default:
		log.Printf("[store] Result queue full, episode %d not persisted", e.Number)
	}
}

// Recent returns up to n results, newest first.
func (l *ResultLog) Recent(n int) []store.Episode {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.recent) {
		n = len(l.recent)
	}
	out := make([]store.Episode, 0, n)
	for i := len(l.recent) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.recent[i])
	}
	return out
}

// Run writes queued results to every sink until ctx is cancelled, then
// flushes what is left.
func (l *ResultLog) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case e := <-l.queue:
			l.write(ctx, e)
		case <-ctx.Done():
			for {
				select {
				case e := <-l.queue:
					l.write(context.Background(), e)
				default:
					return
				}
			}
		}
	}
}

// Wait blocks until Run has returned.
func (l *ResultLog) Wait() { <-l.done }

func (l *ResultLog) write(ctx context.Context, e store.Episode) {
	for _, sink := range l.sinks {
		if err := sink.SaveEpisode(ctx, e); err != nil {
			log.Printf("[store] Saving episode %d failed: %v", e.Number, err)
		}
	}
}
