package report

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/darasa/core/profile"
)

var (
	ErrNotFound     = errors.New("report not found")
	ErrUnknownScope = errors.New("unknown report scope")
)

// Scope selects which moderation queue a report belongs to.
type Scope string

const (
	ScopeCommunity Scope = "community"
	ScopeStudyRoom Scope = "study-room"
)

func (s Scope) Valid() bool {
	return s == ScopeCommunity || s == ScopeStudyRoom
}

type (
	// Report is a user-submitted complaint about a message. Terminal states
	// are reached via deletion only: of the report (dismissal) or cascading
	// via deletion of its message.
	Report struct {
		ID         string    `db:"id" json:"id"`
		MessageID  string    `db:"message_id" json:"message_id"`
		ReporterID string    `db:"reporter_id" json:"reporter_id"`
		Reason     string    `db:"reason" json:"reason"`
		RoomID     string    `db:"room_id" json:"room_id,omitempty"` // study-room scope only
		CreatedAt  time.Time `db:"created_at" json:"created_at"`    // UTC
	}

	Message struct {
		ID        string    `db:"id" json:"id"`
		Content   string    `db:"content" json:"content"`
		UserID    string    `db:"user_id" json:"user_id"`
		CreatedAt time.Time `db:"created_at" json:"created_at"` // UTC
	}

	Room struct {
		ID   string `db:"id" json:"id"`
		Name string `db:"name" json:"name"`
	}

	// Resolved is a Report with its related rows attached. Nil members mean
	// the referenced row no longer exists ("Message deleted", "Unknown").
	Resolved struct {
		Report
		Message  *Message         `json:"message"`
		Reporter *profile.Profile `json:"reporter"`
		Room     *Room            `json:"room,omitempty"`
	}
)

type Repository interface {
	// QueryReports returns all reports in scope ordered by creation date, newest first.
	QueryReports(ctx context.Context, scope Scope) ([]Report, error)
	GetMessagesByID(ctx context.Context, scope Scope, ids []string) ([]Message, error)
	GetRoomsByID(ctx context.Context, ids []string) ([]Room, error)
	DeleteMessage(ctx context.Context, scope Scope, messageID string) error
	DeleteReportsByMessageID(ctx context.Context, scope Scope, messageID string) error
	DeleteReport(ctx context.Context, scope Scope, reportID string) error
}
