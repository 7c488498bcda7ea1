package network

import (
	"time"

	"github.com/automoto/kickoff/shared/messages"
)

const historySize = 64

// InputRecord stores a sent input and when it left the client.
type InputRecord struct {
	Input  messages.PlayerInput
	SentAt time.Time
}

// InputHistory is a ring buffer of recent inputs. The server echoes the
// last applied sequence on the controlled player, which the history turns
// into a round trip time.
type InputHistory struct {
	history  [historySize]InputRecord
	nextSeq  uint32
	lastAck  uint32
	hasInput bool
}

// Next builds the input for the next sequence number. Sequence 0 is never
// used so the server can tell a fresh client from a stale packet.
func (h *InputHistory) Next() messages.PlayerInput {
	if h.nextSeq == 0 {
		h.nextSeq = 1
	}
	return messages.NewPlayerInput(h.nextSeq)
}

// Store saves an input as sent at.
func (h *InputHistory) Store(input messages.PlayerInput, at time.Time) {
	idx := input.Sequence % historySize
	h.history[idx] = InputRecord{Input: input, SentAt: at}
	h.nextSeq = input.Sequence + 1
	h.hasInput = true
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (h *InputHistory) Get(seq uint32) (InputRecord, bool) {
	idx := seq % historySize
	record := h.history[idx]
	if !h.hasInput || record.Input.Sequence != seq {
		return InputRecord{}, false
	}
	return record, true
}

// Ack records that the server applied seq. It returns the round trip of
// that input when seq is newer than the last ack and still buffered.
func (h *InputHistory) Ack(seq uint32, now time.Time) (time.Duration, bool) {
	if seq == 0 || seq <= h.lastAck {
		return 0, false
	}
	h.lastAck = seq
	rec, ok := h.Get(seq)
	if !ok {
		return 0, false
	}
	return now.Sub(rec.SentAt), true
}

// Pending returns how many sent inputs the server has not acknowledged.
func (h *InputHistory) Pending() int {
	if h.nextSeq == 0 {
		return 0
	}
	return int(h.nextSeq - 1 - h.lastAck)
}
