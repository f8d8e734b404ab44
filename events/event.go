// Package events provides the in-process event pipeline. Post and comment
// mutations publish events onto a bus; interested consumers (currently the
// background activity recorder) subscribe independently. Publishing never
// blocks a request: slow subscribers drop messages rather than stall the
// handler.
package events

import "time"

// Type classifies an event.
type Type string

const (
	TypePostCreated  Type = "post.created"
	TypePostUpdated  Type = "post.updated"
	TypePostDeleted  Type = "post.deleted"
	TypeCommentAdded Type = "comment.added"
)

// Event describes one domain mutation.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	PostID     int       `json:"post_id"`
	ActorID    int       `json:"actor_id"` // The authenticated user who triggered the event
	OccurredAt time.Time `json:"occurred_at"`
}

// Bus is the publish/subscribe contract the services depend on.
type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
