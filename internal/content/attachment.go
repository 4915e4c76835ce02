package content

import (
	"context"
	"log/slog"

	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"
)

// Attachment is the pending state of one file field during a write. Files it
// supersedes are removed by Commit once the entity is persisted.
type Attachment struct {
	Field     string
	URL       string
	MediaType string
	Changed   bool

	previous string
	stored   string
}

// Store uploads f for field. A nil f yields an unchanged, empty attachment.
// Rejected files become validation errors on field.
func (d Deps) Store(ctx context.Context, field string, f *upload.File, rule upload.Rule) (Attachment, error) {
	if f == nil {
		return Attachment{Field: field}, nil
	}
	stored, err := d.Files.Store(ctx, f, rule)
	if err != nil {
		if upload.IsRejected(err) {
			return Attachment{}, validation.Field(field, upload.Reason(err))
		}
		return Attachment{}, err
	}
	return Attachment{
		Field:     field,
		URL:       stored.URL,
		MediaType: stored.MediaType,
		Changed:   true,
		stored:    stored.URL,
	}, nil
}

// Replace resolves a file field on update: a new file wins over the current
// one, remove clears it, otherwise current is kept.
func (d Deps) Replace(ctx context.Context, field, current, currentType string, remove bool, f *upload.File, rule upload.Rule) (Attachment, error) {
	att, err := d.Store(ctx, field, f, rule)
	if err != nil {
		return Attachment{}, err
	}
	if att.Changed {
		att.previous = current
		return att, nil
	}
	if remove && current != "" {
		return Attachment{Field: field, Changed: true, previous: current}, nil
	}
	return Attachment{Field: field, URL: current, MediaType: currentType}, nil
}

// Commit removes the files superseded by persisted attachments.
func (d Deps) Commit(ctx context.Context, atts ...Attachment) {
	for _, a := range atts {
		if a.previous != "" && a.previous != a.URL {
			d.Files.Remove(ctx, a.previous)
		}
	}
}

// Abandon records files stored for a write that was not persisted. They are
// left in place.
func (d Deps) Abandon(op string, cause error, atts ...Attachment) {
	for _, a := range atts {
		if a.stored == "" {
			continue
		}
		d.Log.Warn("orphaned upload",
			slog.String("op", op),
			slog.String("field", a.Field),
			slog.String("url", a.stored),
			slog.String("error", cause.Error()),
		)
	}
}
