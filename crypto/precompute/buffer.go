package precompute

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/group"
)

// ErrNotInitialized is returned by Start before Initialize has been called.
var ErrNotInitialized = errors.New("Precompute buffer has no public key")

// DefaultSize is used when Initialize is given a size of zero.
const DefaultSize = 5000

// Buffer keeps queues of triples and TwoTriplesAndAQuadruple units for a single
// public key, topped up by one background worker.
//
// Pops never block: an empty queue is reported and the caller does the
// exponentiations itself. Every item is handed out at most once.
type Buffer struct {
	mu        sync.Mutex
	publicKey *group.ElementModP
	size      int
	triples   []*Triple
	units     []*TwoTriplesAndAQuadruple

	// stop is closed to ask the worker to exit, done is closed by the worker
	// once it has. done stays set until then so every Stop can wait on it.
	stop chan struct{}
	done chan struct{}
	wake chan struct{}
}

func NewBuffer() *Buffer {
	return &Buffer{wake: make(chan struct{}, 1)}
}

// Initialize binds the buffer to a public key and sets how many of each kind of
// item to keep. If the key changes anything already queued is discarded. A running
// worker is stopped first and not restarted. A nil key empties the buffer and
// leaves it uninitialized.
func (b *Buffer) Initialize(publicKey *group.ElementModP, size int) {
	b.Stop()
	if size <= 0 {
		size = DefaultSize
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if publicKey == nil {
		b.publicKey = nil
		b.triples = nil
		b.units = nil
		b.updateGauges()
		return
	}
	if b.publicKey == nil || !b.publicKey.Equal(publicKey) {
		b.triples = nil
		b.units = nil
		b.updateGauges()
	}
	b.publicKey = publicKey.WithFixedBase(true)
	b.size = size
}

// PublicKey is the key the buffer was initialized with, or nil.
func (b *Buffer) PublicKey() *group.ElementModP {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.publicKey
}

// Size is the target length of each queue.
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Start launches the worker. It does nothing if the worker is already running,
// and waits for a worker that is still stopping before starting a new one.
func (b *Buffer) Start() error {
	for {
		b.mu.Lock()
		if b.publicKey == nil {
			b.mu.Unlock()
			return ErrNotInitialized
		}
		if b.stop != nil {
			b.mu.Unlock()
			return nil
		}
		if done := b.done; done != nil {
			b.mu.Unlock()
			<-done
			continue
		}
		b.stop = make(chan struct{})
		b.done = make(chan struct{})
		log.Debug().Int("size", b.size).Msg("precompute worker starting")
		go b.run(b.publicKey, b.stop, b.done)
		b.mu.Unlock()
		return nil
	}
}

// Stop pauses production, keeping whatever is queued. It returns once the worker
// has exited, including when another caller asked it to stop first.
func (b *Buffer) Stop() {
	b.mu.Lock()
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	done := b.done
	b.mu.Unlock()
	if done == nil {
		return
	}
	<-done
	log.Debug().Msg("precompute worker stopped")
}

// Clear stops the worker and discards everything queued.
func (b *Buffer) Clear() {
	b.Stop()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.triples = nil
	b.units = nil
	b.updateGauges()
}

// IsRunning reports whether the worker is active.
func (b *Buffer) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop != nil
}

// Status returns the current queue lengths.
func (b *Buffer) Status() (triples, units int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.triples), len(b.units)
}

// PopTriple removes one triple from the queue, or returns false if there is none.
func (b *Buffer) PopTriple() (*Triple, bool) {
	b.mu.Lock()
	return b.popTripleLocked()
}

// PopTripleFor is PopTriple for callers holding their own public key. It returns
// false without consuming anything when the buffer was built for another key.
func (b *Buffer) PopTripleFor(publicKey *group.ElementModP) (*Triple, bool) {
	b.mu.Lock()
	if b.publicKey == nil || !b.publicKey.Equal(publicKey) {
		b.mu.Unlock()
		log.Debug().Msg("precompute buffer holds triples for a different public key")
		Pops.WithLabelValues(kindTriple, "wrong_key").Inc()
		return nil, false
	}
	return b.popTripleLocked()
}

// popTripleLocked must be called with the lock held and releases it.
func (b *Buffer) popTripleLocked() (*Triple, bool) {
	if len(b.triples) == 0 {
		b.mu.Unlock()
		Pops.WithLabelValues(kindTriple, "empty").Inc()
		return nil, false
	}
	t := b.triples[0]
	b.triples[0] = nil
	b.triples = b.triples[1:]
	b.updateGauges()
	b.mu.Unlock()
	Pops.WithLabelValues(kindTriple, "ok").Inc()
	b.notify()
	return t, true
}

// GetTwoTriplesAndAQuadruple removes one unit from the queue, or returns false if
// there is none.
func (b *Buffer) GetTwoTriplesAndAQuadruple() (*TwoTriplesAndAQuadruple, bool) {
	b.mu.Lock()
	if len(b.units) == 0 {
		b.mu.Unlock()
		Pops.WithLabelValues(kindUnit, "empty").Inc()
		return nil, false
	}
	u := b.units[0]
	b.units[0] = nil
	b.units = b.units[1:]
	b.updateGauges()
	b.mu.Unlock()
	Pops.WithLabelValues(kindUnit, "ok").Inc()
	b.notify()
	return u, true
}

func (b *Buffer) notify() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// must hold the lock
func (b *Buffer) updateGauges() {
	QueueSize.WithLabelValues(kindTriple).Set(float64(len(b.triples)))
	QueueSize.WithLabelValues(kindUnit).Set(float64(len(b.units)))
}

// run tops up whichever queue is shorter, then sleeps until a pop wakes it.
func (b *Buffer) run(publicKey *group.ElementModP, stop, done chan struct{}) {
	defer func() {
		b.mu.Lock()
		if b.done == done {
			b.done = nil
		}
		b.mu.Unlock()
		close(done)
	}()
	for {
		select {
		case <-stop:
			return
		default:
		}

		b.mu.Lock()
		nt, nu, size := len(b.triples), len(b.units), b.size
		b.mu.Unlock()

		if nt >= size && nu >= size {
			select {
			case <-stop:
				return
			case <-b.wake:
			}
			continue
		}

		if nu < size && (nu <= nt || nt >= size) {
			u := NewTwoTriplesAndAQuadruple(publicKey)
			b.mu.Lock()
			if stopped(stop) {
				b.mu.Unlock()
				return
			}
			b.units = append(b.units, u)
			b.updateGauges()
			b.mu.Unlock()
			Produced.WithLabelValues(kindUnit).Inc()
		} else {
			t := NewTriple(publicKey)
			b.mu.Lock()
			if stopped(stop) {
				b.mu.Unlock()
				return
			}
			b.triples = append(b.triples, t)
			b.updateGauges()
			b.mu.Unlock()
			Produced.WithLabelValues(kindTriple).Inc()
		}
	}
}

// stopped drops work finished after a stop was requested, so nothing lands in
// the queues once Stop, Clear or Initialize has begun.
func stopped(stop chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
