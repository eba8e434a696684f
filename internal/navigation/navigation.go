package navigation

import (
	"github.com/goliatone/go-panel/internal/profiles"
)

// Item is one sidebar entry.
type Item struct {
	Label string
	Path  string
	Icon  string
}

// Section groups related sidebar entries under a heading.
type Section struct {
	Title string
	Items []Item
}

// Build returns the sidebar sections visible to the given role. Content
// management is available to every signed-in role; the media library needs
// admin and the activity log needs superadmin.
func Build(role profiles.Role) []Section {
	sections := []Section{
		{
			Title: "Overview",
			Items: []Item{
				{Label: "Dashboard", Path: "/admin", Icon: "home"},
			},
		},
		{
			Title: "Content",
			Items: []Item{
				{Label: "News", Path: "/admin/news", Icon: "newspaper"},
				{Label: "Projects", Path: "/admin/projects", Icon: "folder"},
				{Label: "Events", Path: "/admin/events", Icon: "calendar"},
			},
		},
	}

	var library []Item
	if role.CanManageMedia() {
		library = append(library, Item{Label: "Media", Path: "/admin/media", Icon: "image"})
	}
	if role.CanViewActivityLogs() {
		library = append(library, Item{Label: "Activity Logs", Path: "/admin/activity", Icon: "list"})
		library = append(library, Item{Label: "Users", Path: "/admin/users", Icon: "users"})
	}
	if len(library) > 0 {
		sections = append(sections, Section{Title: "Administration", Items: library})
	}

	sections = append(sections, Section{
		Title: "Account",
		Items: []Item{
			{Label: "Settings", Path: "/admin/settings", Icon: "settings"},
		},
	})

	return sections
}
