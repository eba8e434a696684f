package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind identifies one of the managed content types. Each kind maps to a pair
// of locale tables in the backing store.
type Kind string

const (
	KindNews     Kind = "news"
	KindProjects Kind = "projects"
	KindEvents   Kind = "events"
)

// Kinds lists every managed content kind.
func Kinds() []Kind {
	return []Kind{KindNews, KindProjects, KindEvents}
}

// Valid reports whether the kind is one of the managed content types.
func (k Kind) Valid() bool {
	switch k {
	case KindNews, KindProjects, KindEvents:
		return true
	}
	return false
}

// Locale identifies one side of a bilingual record pair.
type Locale string

const (
	// LocalePrimary is the authoritative locale driving shared fields.
	LocalePrimary Locale = "en"
	// LocaleSecondary is the translated counterpart, joined by slug.
	LocaleSecondary Locale = "az"
)

// Table returns the backing table for a kind and locale. Secondary tables
// carry the locale suffix, matching the hosted schema this panel manages.
func Table(kind Kind, locale Locale) string {
	if locale == LocaleSecondary {
		return string(kind) + "_" + string(LocaleSecondary)
	}
	return string(kind)
}

// Record is one locale row of a content item. The same model backs all six
// tables; the repository selects the table at query time. Secondary rows
// persist SourceID (the primary row id) alongside the slug join key so
// orphaned translations stay traceable after a slug rename.
//
// A nil PublishedAt means draft; a non-nil value means published. There is no
// separate status column.
type Record struct {
	bun.BaseModel `bun:"table:news,alias:r"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	SourceID    *uuid.UUID `bun:"source_id,type:uuid,nullzero" json:"source_id,omitempty"`
	Title       string     `bun:"title,notnull" json:"title"`
	Excerpt     *string    `bun:"excerpt" json:"excerpt,omitempty"`
	Content     *string    `bun:"content" json:"content,omitempty"`
	Category    *string    `bun:"category" json:"category,omitempty"`
	Slug        string     `bun:"slug,notnull" json:"slug"`
	ImageURL    *string    `bun:"image_url" json:"image_url,omitempty"`
	PublishedAt *time.Time `bun:"published_at,nullzero" json:"published_at,omitempty"`
	EventDate   *time.Time `bun:"event_date,nullzero" json:"event_date,omitempty"`
	Location    *string    `bun:"location" json:"location,omitempty"`
	CreatedBy   *uuid.UUID `bun:"created_by,type:uuid,nullzero" json:"created_by,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Published reports whether the record is in the published state.
func (r *Record) Published() bool {
	return r != nil && r.PublishedAt != nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	copied := *r
	copied.SourceID = cloneUUIDPtr(r.SourceID)
	copied.Excerpt = cloneStringPtr(r.Excerpt)
	copied.Content = cloneStringPtr(r.Content)
	copied.Category = cloneStringPtr(r.Category)
	copied.ImageURL = cloneStringPtr(r.ImageURL)
	copied.PublishedAt = cloneTimePtr(r.PublishedAt)
	copied.EventDate = cloneTimePtr(r.EventDate)
	copied.Location = cloneStringPtr(r.Location)
	copied.CreatedBy = cloneUUIDPtr(r.CreatedBy)
	return &copied
}

// Draft carries the user-entered fields for one locale of a save request.
// Empty strings mean "not provided"; the synchronizer falls back per field to
// the primary locale's values.
type Draft struct {
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Slug      string
	ImageURL  string
	EventDate *time.Time
	Location  string
}

// WriteOp distinguishes the secondary-write instruction kinds.
type WriteOp string

const (
	WriteOpInsert WriteOp = "insert"
	WriteOpUpdate WriteOp = "update"
	// WriteOpNone marks results where no secondary write happened (e.g. a
	// save that failed before the secondary phase).
	WriteOpNone WriteOp = ""
)

// SecondaryWrite is the instruction produced by the synchronizer: either an
// insert of a new secondary row or an update targeting an existing one. It is
// a pure value; executing it is the caller's job.
type SecondaryWrite struct {
	Op       WriteOp
	TargetID uuid.UUID // set for updates only
	Record   *Record
}

// Entry bundles both locale rows of one logical content item. Secondary is
// nil until the translated row has been lazily created.
type Entry struct {
	Kind      Kind
	Primary   *Record
	Secondary *Record
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func cloneTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func cloneUUIDPtr(v *uuid.UUID) *uuid.UUID {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
