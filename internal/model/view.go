package model

import "time"

type ViewKind string

// Системные представления списка задач
const (
	ViewInbox     ViewKind = "inbox"
	ViewToday     ViewKind = "today"
	ViewImportant ViewKind = "important"
	ViewCompleted ViewKind = "completed"
	ViewUpcoming  ViewKind = "upcoming"
	ViewProject   ViewKind = "project"
)

// View — закрытый набор системных представлений плюс вариант
// с именем проекта. Не открытая строка.
type View struct {
	Kind    ViewKind
	Project string
}

func ProjectView(name string) View {
	return View{Kind: ViewProject, Project: name}
}

// ParseView нормализует параметры запроса в View.
// Неизвестное значение трактуется как inbox.
func ParseView(kind, project string) View {
	if project != "" {
		return ProjectView(project)
	}
	switch ViewKind(kind) {
	case ViewToday, ViewImportant, ViewCompleted, ViewUpcoming:
		return View{Kind: ViewKind(kind)}
	default:
		return View{Kind: ViewInbox}
	}
}

// Matches — чистый предикат фильтрации, без I/O.
func (v View) Matches(t Task, now time.Time) bool {
	switch v.Kind {
	case ViewToday:
		if sameDay(t.CreatedAt, now) {
			return true
		}
		return t.Deadline != nil && sameDay(*t.Deadline, now)
	case ViewImportant:
		return t.Priority <= 2
	case ViewCompleted:
		return t.Completed
	case ViewUpcoming:
		return t.Deadline != nil && t.Deadline.After(now) && !sameDay(*t.Deadline, now)
	case ViewProject:
		return t.Project == v.Project
	default: // inbox
		return true
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
