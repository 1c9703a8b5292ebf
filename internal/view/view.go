// Package view derives the session view model shown to the user.
//
// Reconcile merges the server's raw session list with its status map into
// an ordered list of SessionView values. Store holds the published view
// state behind an explicit mutation surface so polling, user actions, and
// rendering never share ambient globals.
package view

import (
	"sort"

	"github.com/gervaso-assistant/ocremote/internal/client"
)

// StatusUnknown is the status of a session absent from the status map.
const StatusUnknown = "unknown"

// SessionView is the reconciled projection of one session.
type SessionView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Directory string `json:"directory"`
	Updated   int64  `json:"updated"`
	Status    string `json:"status"`
	Files     int    `json:"files"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Reconcile merges raw sessions and statuses into one SessionView per raw
// session, ordered descending by update time with stable ties. Missing
// statuses degrade to StatusUnknown and missing summaries to zero counts;
// the function never fails.
func Reconcile(raw []client.RawSession, statuses map[string]client.SessionStatus) []SessionView {
	views := make([]SessionView, 0, len(raw))

	for _, session := range raw {
		v := SessionView{
			ID:        session.ID,
			Title:     session.Title,
			Directory: session.Directory,
			Updated:   session.Time.Updated,
			Status:    StatusUnknown,
		}

		if status, ok := statuses[session.ID]; ok && status.Type != "" {
			v.Status = status.Type
		}

		if session.Summary != nil {
			v.Files = session.Summary.Files
			v.Additions = session.Summary.Additions
			v.Deletions = session.Summary.Deletions
		}

		views = append(views, v)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Updated > views[j].Updated
	})

	return views
}
