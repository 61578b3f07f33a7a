package note

import "time"

const (
	// MaxTitleLength is counted in Unicode code points.
	MaxTitleLength = 200
)

// Note is the single persisted entity. UserID is the owner identity.
type Note struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Tags      []string  `json:"tags" bson:"tags"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Patch carries a partial update. Nil fields are left unchanged; a non-nil
// empty Tags slice clears the tags.
type Patch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// Apply merges p into n. UpdatedAt is left to the caller.
func (p Patch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = CloneTags(*p.Tags)
	}
}

// CloneTags copies tags, never returning nil.
func CloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// Clone returns a deep copy of n.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = CloneTags(n.Tags)
	return &c
}
