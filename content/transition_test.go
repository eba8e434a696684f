package content

import "testing"

func TestClassifyTransition(t *testing.T) {
	cases := []struct {
		name string
		was  bool
		will bool
		want Transition
	}{
		{name: "draft to published", was: false, will: true, want: TransitionPublished},
		{name: "published to draft", was: true, will: false, want: TransitionUnpublished},
		{name: "draft stays draft", was: false, will: false, want: TransitionUpdated},
		{name: "published stays published", was: true, will: true, want: TransitionUpdated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyTransition(tc.was, tc.will); got != tc.want {
				t.Fatalf("ClassifyTransition(%v, %v) = %q, want %q", tc.was, tc.will, got, tc.want)
			}
		})
	}
}

func TestClassifyCreate(t *testing.T) {
	if got := ClassifyCreate(true); got != TransitionCreatedPublished {
		t.Fatalf("ClassifyCreate(true) = %q, want %q", got, TransitionCreatedPublished)
	}
	if got := ClassifyCreate(false); got != TransitionCreatedDraft {
		t.Fatalf("ClassifyCreate(false) = %q, want %q", got, TransitionCreatedDraft)
	}
}
