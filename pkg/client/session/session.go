// Package session keeps a client's local view of one chat room consistent
// with the server's durable log.
//
// The server is the single source of truth: everything a client renders
// eventually comes from a committed ChatMessage with a server-assigned id
// and seq. Locally sent messages live in a PENDING state keyed by a
// client-generated temp id until the server's record arrives, then the
// temp entry is swapped for the durable one. After a disconnect, the
// session re-syncs from its last seen seq and merges without duplicates.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

type State string

const (
	// sent locally, no server ack yet. Rendered greyed-out.
	Pending State = "pending"

	// backed by a committed server record.
	Confirmed State = "confirmed"

	// no ack within the timeout. The user may retry, which issues a
	// fresh temp id.
	Failed State = "failed"
)

// LocalMessage is a message as the client renders it.
type LocalMessage struct {
	// client-generated identity of the send attempt. Empty for messages
	// that arrived from the server without a local counterpart.
	TempId string

	State State

	// the durable record when State is Confirmed; otherwise the local
	// draft (no id, no seq).
	Message domain.ChatMessage
}

const (
	defaultAckTimeout = 10 * time.Second

	// how many server message ids are remembered for deduplication.
	defaultSeenLimit = 4096
)

type RoomSession struct {
	mutex sync.Mutex

	roomId string
	userId string

	ackTimeout time.Duration
	seenLimit  int
	now        func() time.Time

	confirmed []domain.ChatMessage

	// send attempts in flight or failed, in send order.
	local []*localEntry

	// server ids already merged, with their seq for eviction order.
	seen map[string]int64

	lastSeq int64
}

type localEntry struct {
	tempId string
	state  State
	draft  domain.ChatMessage
	sentAt time.Time
}

type Option func(*RoomSession)

// WithAckTimeout sets how long a send may stay PENDING before
// PurgeExpired fails it.
func WithAckTimeout(d time.Duration) Option {
	return func(s *RoomSession) {
		s.ackTimeout = d
	}
}

// WithSeenLimit bounds the deduplication set.
func WithSeenLimit(n int) Option {
	return func(s *RoomSession) {
		s.seenLimit = n
	}
}

func withClock(now func() time.Time) Option {
	return func(s *RoomSession) {
		s.now = now
	}
}

func New(roomId string, userId string, options ...Option) *RoomSession {
	s := &RoomSession{
		roomId:     roomId,
		userId:     userId,
		ackTimeout: defaultAckTimeout,
		seenLimit:  defaultSeenLimit,
		now:        time.Now,
		seen:       map[string]int64{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SendLocal records a send attempt and returns its temp id. The caller
// transmits the content together with the temp id; the server echoes the
// temp id back in the ack so Confirm can match them up.
func (s *RoomSession) SendLocal(content *string, kind domain.MessageKind) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tempId := uuid.NewString()
	s.local = append(s.local, &localEntry{
		tempId: tempId,
		state:  Pending,
		draft: domain.ChatMessage{
			RoomId:    s.roomId,
			SenderId:  s.userId,
			Content:   content,
			Kind:      kind,
			CreatedAt: s.now(),
		},
		sentAt: s.now(),
	})
	return tempId
}

// Confirm resolves a PENDING attempt with the server's durable record.
// Unknown temp ids are ignored (the attempt may have been purged).
func (s *RoomSession) Confirm(tempId string, msg domain.ChatMessage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, e := range s.local {
		if e.tempId != tempId {
			continue
		}
		s.local = append(s.local[:i], s.local[i+1:]...)
		s.merge(msg)
		return
	}

	// already resolved or purged; still take the record itself.
	s.merge(msg)
}

// Fail marks a PENDING attempt as FAILED. The entry stays visible so the
// user can retry.
func (s *RoomSession) Fail(tempId string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, e := range s.local {
		if e.tempId == tempId && e.state == Pending {
			e.state = Failed
			return
		}
	}
}

// PurgeExpired fails every PENDING attempt older than the ack timeout and
// returns their temp ids.
func (s *RoomSession) PurgeExpired() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	deadline := s.now().Add(-s.ackTimeout)
	expired := []string{}
	for _, e := range s.local {
		if e.state == Pending && e.sentAt.Before(deadline) {
			e.state = Failed
			expired = append(expired, e.tempId)
		}
	}
	return expired
}

// Drop removes a FAILED attempt, typically after the user discards it.
func (s *RoomSession) Drop(tempId string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, e := range s.local {
		if e.tempId == tempId && e.state == Failed {
			s.local = append(s.local[:i], s.local[i+1:]...)
			return
		}
	}
}

// Receive merges a message pushed by the server. Duplicates (already
// merged by Confirm or an earlier push) are ignored.
func (s *RoomSession) Receive(msg domain.ChatMessage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.merge(msg)
}

// Resync merges a batch fetched from the server, typically the result of
// listing messages after LastSeq() on reconnect.
func (s *RoomSession) Resync(msgs []domain.ChatMessage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, msg := range msgs {
		s.merge(msg)
	}
}

// LastSeq is the re-sync cursor: the highest seq merged so far.
func (s *RoomSession) LastSeq() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastSeq
}

// Messages lists the room as the client should render it: confirmed
// messages in log order, then unresolved local attempts in send order.
func (s *RoomSession) Messages() []LocalMessage {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]LocalMessage, 0, len(s.confirmed)+len(s.local))
	for _, msg := range s.confirmed {
		result = append(result, LocalMessage{State: Confirmed, Message: msg})
	}
	for _, e := range s.local {
		result = append(result, LocalMessage{
			TempId: e.tempId, State: e.state, Message: e.draft,
		})
	}
	return result
}

// merge inserts a server record in (CreatedAt, Seq) order, deduplicating
// by id. Callers hold the mutex.
func (s *RoomSession) merge(msg domain.ChatMessage) {
	if _, ok := s.seen[msg.Id]; ok {
		// an edit replays the id with new content; take the newer record.
		for i := range s.confirmed {
			if s.confirmed[i].Id == msg.Id {
				s.confirmed[i] = msg
				break
			}
		}
		return
	}

	at := sort.Search(len(s.confirmed), func(i int) bool {
		c := s.confirmed[i]
		if !c.CreatedAt.Equal(msg.CreatedAt) {
			return c.CreatedAt.After(msg.CreatedAt)
		}
		return c.Seq > msg.Seq
	})
	s.confirmed = append(s.confirmed, domain.ChatMessage{})
	copy(s.confirmed[at+1:], s.confirmed[at:])
	s.confirmed[at] = msg

	s.seen[msg.Id] = msg.Seq
	if s.lastSeq < msg.Seq {
		s.lastSeq = msg.Seq
	}

	s.evictSeen()
}

// evictSeen trims the dedup set to the limit, oldest seq first. Evicted
// ids can no longer be deduplicated, which is fine: the server never
// re-pushes messages that old.
func (s *RoomSession) evictSeen() {
	if len(s.seen) <= s.seenLimit {
		return
	}

	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.seen[ids[i]] < s.seen[ids[j]]
	})
	for _, id := range ids[:len(s.seen)-s.seenLimit] {
		delete(s.seen, id)
	}
}
