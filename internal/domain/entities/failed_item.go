package entities

import "time"

// FailedItem is a question the user got wrong, kept for later review.
type FailedItem struct {
	UserID     int64     `json:"user_id"`
	Format     Format    `json:"format"`
	Descriptor string    `json:"descriptor"` // serialized question, see Question.Descriptor
	CreatedAt  time.Time `json:"created_at"`
}

// NewFailedItem creates a failed item for q.
func NewFailedItem(q Question) FailedItem {
	return FailedItem{
		Format:     q.Format,
		Descriptor: q.Descriptor(),
		CreatedAt:  time.Now(),
	}
}

// Question decodes the stored descriptor.
// Descriptors written by older versions may be plain text; they become the prompt.
func (fi FailedItem) Question() Question {
	q, err := ParseDescriptor(fi.Descriptor)
	if err != nil {
		return Question{Format: fi.Format, Prompt: fi.Descriptor}
	}
	return q
}
