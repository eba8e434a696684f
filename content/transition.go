package content

// Transition tags the publish-state change of a save for the audit trail.
type Transition string

const (
	TransitionCreatedPublished Transition = "created_published"
	TransitionCreatedDraft     Transition = "created_draft"
	TransitionPublished        Transition = "published"
	TransitionUnpublished      Transition = "unpublished"
	TransitionUpdated          Transition = "updated"
)

// ClassifyTransition maps a publish-state edge on an existing item to its
// audit tag. Same-state saves classify as updated regardless of direction.
func ClassifyTransition(wasPublished, willBePublished bool) Transition {
	switch {
	case !wasPublished && willBePublished:
		return TransitionPublished
	case wasPublished && !willBePublished:
		return TransitionUnpublished
	default:
		return TransitionUpdated
	}
}

// ClassifyCreate maps the initial publish state of a new item to its audit
// tag. There is no prior state to compare on insert.
func ClassifyCreate(published bool) Transition {
	if published {
		return TransitionCreatedPublished
	}
	return TransitionCreatedDraft
}
