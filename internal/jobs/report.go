package jobs

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/vinayaksoni1729/TaskX/internal/repo"
	"github.com/vinayaksoni1729/TaskX/pkg/email"
)

// Report раз в неделю шлет каждому владельцу сводку по задачам
// с дедлайном за последние 7 дней
type Report struct {
	repo   TaskSource
	sender email.Sender
	logger *zap.Logger
}

func NewReport(taskRepo TaskSource, sender email.Sender, logger *zap.Logger) *Report {
	return &Report{repo: taskRepo, sender: sender, logger: logger}
}

type reportData struct {
	Completed int
	Total     int
	Tasks     []reportLine
	Closing   string
}

type reportLine struct {
	Title    string
	Status   string
	Deadline string
}

var reportTextTmpl = template.Must(template.New("report").Parse(`Your Weekly Report:

{{range .Tasks}}- {{.Title}}: {{.Status}} (Deadline: {{.Deadline}})
{{end}}
{{.Closing}}
`))

var reportHTMLTmpl = htmltemplate.Must(htmltemplate.New("report").Parse(`<h2>Your Weekly Report:</h2>
<ul>
{{range .Tasks}}<li><strong>{{.Title}}</strong>: {{.Status}} (Deadline: {{.Deadline}})</li>
{{end}}</ul>
<p>{{.Closing}}</p>
`))

func (j *Report) Run(ctx context.Context, now time.Time) (Summary, error) {
	from := startOfDay(now.AddDate(0, 0, -7))
	to := endOfDay(now)

	tasks, err := j.repo.DueForReport(ctx, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("query report tasks: %w", err)
	}

	// Группировка по владельцу с сохранением порядка выборки
	byOwner := make(map[string][]repo.DueTask)
	order := make([]string, 0)
	for _, t := range tasks {
		if _, ok := byOwner[t.OwnerID]; !ok {
			order = append(order, t.OwnerID)
		}
		byOwner[t.OwnerID] = append(byOwner[t.OwnerID], t)
	}

	summary := Summary{Matched: len(order)}

	for _, ownerID := range order {
		ownerTasks := byOwner[ownerID]

		to := ownerTasks[0].OwnerEmail
		if to == "" {
			j.logger.Warn("no email for report recipient, skipping", zap.String("owner_id", ownerID))
			summary.Skipped++
			continue
		}

		text, html, err := renderReport(ownerTasks)
		if err != nil {
			j.logger.Error("failed to render report", zap.String("owner_id", ownerID), zap.Error(err))
			summary.Skipped++
			continue
		}

		msg := email.Message{
			To:      to,
			Subject: "Your Weekly Performance Report",
			Text:    text,
			HTML:    html,
		}

		// Неудача у одного получателя не прерывает остальных
		if err := j.sender.Send(ctx, msg); err != nil {
			j.logger.Error("report email failed", zap.String("to", to), zap.Error(err))
			summary.Skipped++
			continue
		}

		summary.Sent++
	}

	return summary, nil
}

// renderReport собирает обе части письма, текстовую и HTML
func renderReport(tasks []repo.DueTask) (text, html string, err error) {
	data := reportData{Total: len(tasks)}

	for _, t := range tasks {
		status := "Not Completed"
		if t.Completed {
			status = "Completed"
			data.Completed++
		}
		data.Tasks = append(data.Tasks, reportLine{
			Title:    t.Title,
			Status:   status,
			Deadline: t.Deadline.Local().Format("Jan 2, 2006"),
		})
	}

	if data.Completed == data.Total {
		data.Closing = "Excellent job! You completed all your tasks!"
	} else {
		data.Closing = fmt.Sprintf("You completed %d out of %d tasks. Keep pushing forward!", data.Completed, data.Total)
	}

	var textBuf bytes.Buffer
	if err := reportTextTmpl.Execute(&textBuf, data); err != nil {
		return "", "", err
	}

	var htmlBuf bytes.Buffer
	if err := reportHTMLTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}

	return textBuf.String(), htmlBuf.String(), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
