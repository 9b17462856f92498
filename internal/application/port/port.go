// Package port declares the interfaces the application services depend
// on, keeping infrastructure swappable and mockable.
package port

import (
	"context"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/wizard"
)

// SubmissionSink receives the payload assembled when a wizard session
// completes. The engine emits each payload at most once.
type SubmissionSink interface {
	Receive(ctx context.Context, sub *entity.Submission) error
}

// SessionStore tracks live wizard sessions by session id. One session
// belongs to exactly one UI surface; the store never shares state between
// sessions.
type SessionStore interface {
	Put(id string, s *wizard.Session)
	Get(id string) (*wizard.Session, bool)
	Delete(id string)
	Len() int
}

// MirrorStore durably persists the small set of keys that must survive a
// reload of the hosting shell. Everything else lives in session memory.
type MirrorStore interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// QuotationExporter writes a submitted vendor quotation to a document and
// returns its path.
type QuotationExporter interface {
	Export(ctx context.Context, sub *entity.Submission) (string, error)
}
