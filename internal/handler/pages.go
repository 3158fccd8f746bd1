package handler

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler рендерит маркетинговый лендинг
type PageHandler struct {
	tmpl   *template.Template
	logger *zap.Logger
}

func NewPageHandler(logger *zap.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{tmpl: tmpl, logger: logger}, nil
}

type feature struct {
	Title       string
	Description string
}

type plan struct {
	Name        string
	Price       string
	Description string
	Features    []string
	Popular     bool
}

type testimonial struct {
	Name  string
	Role  string
	Quote string
}

// dashboardTask — строка в превью дашборда на лендинге
type dashboardTask struct {
	Title string
	Due   string
	Tag   string
	Done  bool
}

type landingData struct {
	AppName      string
	Tagline      string
	Features     []feature
	Dashboard    []dashboardTask
	Plans        []plan
	Testimonials []testimonial
}

// Контент лендинга статичен, собирается один раз
var landing = landingData{
	AppName: "TaskX",
	Tagline: "Smart Task Management",
	Features: []feature{
		{"Smart Reminders", "Get notified right before a deadline hits, never after."},
		{"Progress Reports", "A weekly summary of what you finished and what slipped."},
		{"Task Automation", "Type a task in plain words and let TaskX pick the date."},
		{"Team Collaboration", "Share projects and keep everyone on the same page."},
	},
	Dashboard: []dashboardTask{
		{Title: "Review quarterly goals", Due: "Today, 2:00 PM", Tag: "Work"},
		{Title: "Call mom", Due: "Tomorrow, 3:00 PM", Tag: "Personal"},
		{Title: "Pay rent", Due: "Friday", Tag: "Personal"},
		{Title: "Morning run", Due: "Today, 7:00 AM", Tag: "Health", Done: true},
	},
	Plans: []plan{
		{
			Name: "Basic", Price: "0",
			Description: "Perfect for individuals just getting started",
			Features:    []string{"Up to 30 tasks", "Basic reminders", "Daily progress report"},
		},
		{
			Name: "Pro", Price: "12",
			Description: "Ideal for busy professionals",
			Features:    []string{"Unlimited tasks", "Advanced reminder system", "Weekly & monthly reports", "Team collaboration (up to 5)"},
			Popular:     true,
		},
		{
			Name: "Team", Price: "39",
			Description: "For teams who need seamless collaboration",
			Features:    []string{"Unlimited tasks", "Advanced reminder system", "Custom reports", "Team collaboration (unlimited)", "Priority support"},
		},
	},
	Testimonials: []testimonial{
		{"Sarah Johnson", "Project Manager", "TaskX keeps my whole week in one place. The Monday reminders alone are worth it."},
		{"Michael Chen", "Engineering Lead", "Typing \"review PR friday at 2pm\" and getting a scheduled task back still feels like magic."},
		{"Emily Rodriguez", "Marketing Director", "The weekly report email is the only status update I actually read."},
	},
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "landing.html", landing); err != nil {
		h.logger.Error("failed to render landing page", zap.Error(err))
	}
}
