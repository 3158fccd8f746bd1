package parse

import (
	"strings"

	"github.com/vinayaksoni1729/TaskX/internal/model"
)

// Правило повторения: phrase ищется в тексте, remove вырезается.
// Для фраз вида "every monday" вырезается только "every " —
// имя дня недели остается в тексте для извлечения даты.
type recurrenceRule struct {
	phrase string
	remove string
	tag    string
}

var recurrenceRules = []recurrenceRule{
	{"every monday", "every ", model.RecurringWeekly},
	{"every tuesday", "every ", model.RecurringWeekly},
	{"every wednesday", "every ", model.RecurringWeekly},
	{"every thursday", "every ", model.RecurringWeekly},
	{"every friday", "every ", model.RecurringWeekly},
	{"every saturday", "every ", model.RecurringWeekly},
	{"every sunday", "every ", model.RecurringWeekly},
	{"every day", "every day", model.RecurringDaily},
	{"everyday", "everyday", model.RecurringDaily},
	{"daily", "daily", model.RecurringDaily},
	{"every week", "every week", model.RecurringWeekly},
	{"weekly", "weekly", model.RecurringWeekly},
	{"every month", "every month", model.RecurringMonthly},
	{"monthly", "monthly", model.RecurringMonthly},
	{"every year", "every year", model.RecurringYearly},
	{"annually", "annually", model.RecurringYearly},
	{"yearly", "yearly", model.RecurringYearly},
}

type projectRule struct {
	phrase string
	name   string
}

var projectRules = []projectRule{
	{"#personal", "Personal"},
	{"#work", "Work"},
	{"#study", "Study"},
	{"#health", "Health"},
	{"for personal", "Personal"},
	{"for work", "Work"},
	{"for study", "Study"},
	{"for health", "Health"},
}

// normalize вырезает из сырого ввода фразы повторения и проекта.
// Применяется не больше одного совпадения из каждой таблицы,
// побеждает первое по порядку таблицы.
func normalize(raw string) (residual, recurring, project string) {
	residual = raw

	for _, r := range recurrenceRules {
		if containsFold(residual, r.phrase) {
			residual = stripPhrase(residual, r.remove)
			recurring = r.tag
			break
		}
	}

	for _, p := range projectRules {
		if containsFold(residual, p.phrase) {
			residual = stripPhrase(residual, p.phrase)
			project = p.name
			break
		}
	}

	return residual, recurring, project
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// stripPhrase удаляет первое вхождение фразы без учета регистра
// и схлопывает оставшиеся пробелы.
func stripPhrase(s, phrase string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(phrase))
	if idx < 0 {
		return s
	}
	cut := s[:idx] + s[idx+len(phrase):]
	return strings.Join(strings.Fields(cut), " ")
}
