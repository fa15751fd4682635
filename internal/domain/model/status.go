package model

import "strings"

// StatusKind is a task status folded into the set the dashboard summarises.
type StatusKind string

// Known status kinds, in display order.
const (
	StatusTodo       StatusKind = "TODO"
	StatusInProgress StatusKind = "IN_PROGRESS"
	StatusCompleted  StatusKind = "COMPLETED"
	StatusCancelled  StatusKind = "CANCELLED"
	StatusFailed     StatusKind = "FAILED"
)

// StatusKinds returns every kind in display order.
func StatusKinds() []StatusKind {
	return []StatusKind{StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled, StatusFailed}
}

var aliases = map[string]StatusKind{
	"TODO":        StatusTodo,
	"IN_PROGRESS": StatusInProgress,
	"COMPLETED":   StatusCompleted,
	"COMPLETE":    StatusCompleted,
	"DONE":        StatusCompleted,
	"CANCELLED":   StatusCancelled,
	"CANCELED":    StatusCancelled,
	"FAILED":      StatusFailed,
}

// NormalizeStatus maps a raw backend status to a StatusKind. Unknown and
// empty values count as TODO.
func NormalizeStatus(raw string) StatusKind {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	if k, ok := aliases[s]; ok {
		return k
	}
	return StatusTodo
}

// Label is the human form, e.g. "In Progress".
func (k StatusKind) Label() string {
	parts := strings.Split(strings.ToLower(string(k)), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Emoji is the icon shown next to a task of this kind.
func (k StatusKind) Emoji() string {
	switch k {
	case StatusTodo:
		return "📝"
	case StatusInProgress:
		return "🚧"
	case StatusCompleted:
		return "✅"
	case StatusCancelled:
		return "❌"
	case StatusFailed:
		return "❗"
	default:
		return ""
	}
}

// Class is a CSS-safe identifier, e.g. "in-progress".
func (k StatusKind) Class() string {
	return strings.ReplaceAll(strings.ToLower(string(k)), "_", "-")
}
