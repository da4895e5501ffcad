package bot

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type stage int

const (
	stageIdle stage = iota
	stageDate
	stageTime
	stageDuration
)

var (
	errNoConversation = errors.New("no booking conversation in progress")
	errUnexpectedStep = errors.New("unexpected step in booking conversation")
)

// Draft is a completed /book conversation.
type Draft struct {
	Key      string
	Date     string
	Clock    string
	Duration time.Duration
}

type conversation struct {
	id        string
	stage     stage
	date      string
	clock     string
	updatedAt time.Time
}

// Conversations tracks the date -> time -> duration dialog per user.
// A conversation left alone for longer than ttl is forgotten.
type Conversations struct {
	mu    sync.Mutex
	byID  map[int64]*conversation
	ttl   time.Duration
	clock func() time.Time
}

func NewConversations(ttl time.Duration) *Conversations {
	return &Conversations{
		byID:  make(map[int64]*conversation),
		ttl:   ttl,
		clock: time.Now,
	}
}

func (c *Conversations) Begin(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID[userID] = &conversation{
		id:        uuid.New().String(),
		stage:     stageDate,
		updatedAt: c.clock(),
	}
}

func (c *Conversations) ChooseDate(userID int64, date string) error {
	return c.step(userID, stageDate, func(conv *conversation) {
		conv.date = date
		conv.stage = stageTime
	})
}

func (c *Conversations) ChooseTime(userID int64, clock string) error {
	return c.step(userID, stageTime, func(conv *conversation) {
		conv.clock = clock
		conv.stage = stageDuration
	})
}

// ChooseDuration finishes the conversation and returns what was collected.
func (c *Conversations) ChooseDuration(userID int64, d time.Duration) (Draft, error) {
	var draft Draft
	err := c.step(userID, stageDuration, func(conv *conversation) {
		draft = Draft{
			Key:      "tg:" + conv.id,
			Date:     conv.date,
			Clock:    conv.clock,
			Duration: d,
		}
	})
	if err != nil {
		return Draft{}, err
	}

	c.Abort(userID)
	return draft, nil
}

// Abort reports whether a conversation was in progress.
func (c *Conversations) Abort(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.byID[userID]
	delete(c.byID, userID)
	return ok
}

// Date returns the date chosen so far.
func (c *Conversations) Date(userID int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv, ok := c.live(userID)
	if !ok || conv.date == "" {
		return "", false
	}
	return conv.date, true
}

func (c *Conversations) step(userID int64, want stage, apply func(*conversation)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv, ok := c.live(userID)
	if !ok {
		return errNoConversation
	}
	if conv.stage != want {
		return errUnexpectedStep
	}

	apply(conv)
	conv.updatedAt = c.clock()
	return nil
}

func (c *Conversations) live(userID int64) (*conversation, bool) {
	conv, ok := c.byID[userID]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.clock().Sub(conv.updatedAt) > c.ttl {
		delete(c.byID, userID)
		return nil, false
	}
	return conv, true
}
