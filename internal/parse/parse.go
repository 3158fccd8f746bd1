package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Время по умолчанию, если во вводе нет явного времени
const (
	defaultHour   = 9
	defaultMinute = 0
)

// Result — структурированный итог разбора свободного текста.
// Нулевое Due означает "дата не найдена".
type Result struct {
	Title     string
	Due       time.Time
	Recurring string
	Project   string
}

// Parser оборачивает библиотеку when и добавляет пост-обработку:
// таблицы ключевых слов и переопределение дней недели.
type Parser struct {
	w *when.Parser
}

func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

var (
	weekdayRe = regexp.MustCompile(`(?i)\b(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)

	// Явное время: "15:30", "3pm", "3 pm", "noon", "midnight"
	explicitTimeRe = regexp.MustCompile(`(?i)\d{1,2}:\d{2}|\b\d{1,2}\s*(?:am|pm)\b|\bnoon\b|\bmidnight\b`)

	// Висячие связки после вырезания фрагмента даты: "call mom on" -> "call mom"
	danglingRe = regexp.MustCompile(`(?i)\s+(?:on|at|by|in|due|until|till)$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse разбирает сырой ввод относительно момента now.
// Никогда не возвращает ошибку: при полном отсутствии даты
// результат деградирует до {Title: trim(raw)}.
func (p *Parser) Parse(raw string, now time.Time) Result {
	trimmed := strings.TrimSpace(raw)

	residual, recurring, project := normalize(trimmed)

	res := Result{Recurring: recurring, Project: project}

	match, err := p.w.Parse(residual, now)
	if err != nil || match == nil {
		res.Title = strings.TrimSpace(residual)
		return res
	}

	res.Due = match.Time

	// Время считается заданным, если во фрагменте есть явный токен
	// или библиотека сама вычислила часы ("in 2 hours", "tonight"):
	// для чисто датовых выражений она сохраняет часы от now.
	hasTime := explicitTimeRe.MatchString(match.Text) || !sameClock(match.Time, now)

	// Библиотека может разрешить голое имя дня недели в прошлое.
	// Дедлайн всегда смотрит вперед, поэтому дата пересчитывается.
	if wd, ok := findWeekday(residual); ok {
		res.Due = nextWeekday(wd, match.Time, now, hasTime)
	} else if !hasTime {
		res.Due = atClock(res.Due, defaultHour, defaultMinute, now.Location())
	}

	res.Title = stripDateFragment(residual, match.Text)
	return res
}

// findWeekday возвращает первый упомянутый в тексте день недели.
func findWeekday(text string) (time.Weekday, bool) {
	m := weekdayRe.FindString(text)
	if m == "" {
		return 0, false
	}
	return weekdays[strings.ToLower(m)], true
}

// nextWeekday вычисляет ближайшее будущее вхождение дня недели.
// Сегодняшний день подходит, только если вычисленное время еще впереди.
func nextWeekday(target time.Weekday, naive, now time.Time, hasTime bool) time.Time {
	daysToAdd := (int(target) - int(now.Weekday()) + 7) % 7

	hour, minute := defaultHour, defaultMinute
	if hasTime {
		hour, minute = naive.Hour(), naive.Minute()
	}

	day := now.AddDate(0, 0, daysToAdd)
	due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())

	if daysToAdd == 0 && due.Before(now) {
		due = due.AddDate(0, 0, 7)
	}
	return due
}

func sameClock(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

func atClock(t time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, loc)
}

// stripDateFragment убирает распознанный фрагмент даты из текста,
// остаток становится заголовком задачи.
func stripDateFragment(text, fragment string) string {
	title := stripPhrase(text, fragment)
	title = danglingRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
