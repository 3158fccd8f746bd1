package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vinayaksoni1729/TaskX/internal/jobs"
	"github.com/vinayaksoni1729/TaskX/pkg/respond"
)

// JobHandler — GET-входы для внешнего планировщика (cron поверх HTTP,
// как в исходных API-роутах sendReminders/generateReport)
type JobHandler struct {
	reminder *jobs.Reminder
	report   *jobs.Report
	token    string
	logger   *zap.Logger
}

func NewJobHandler(reminder *jobs.Reminder, report *jobs.Report, token string, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		reminder: reminder,
		report:   report,
		token:    token,
		logger:   logger,
	}
}

func (h *JobHandler) Routes(r chi.Router) {
	r.Get("/reminders", h.SendReminders)
	r.Get("/weekly-report", h.WeeklyReport)
}

func (h *JobHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respond.Error(w, r, http.StatusUnauthorized, "bad trigger token")
		return
	}

	summary, err := h.reminder.Run(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("reminder job failed", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "failed to send reminders")
		return
	}

	h.logger.Info("reminder job finished",
		zap.Int("matched", summary.Matched),
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
	)
	respond.JSON(w, r, http.StatusOK, summary)
}

func (h *JobHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respond.Error(w, r, http.StatusUnauthorized, "bad trigger token")
		return
	}

	summary, err := h.report.Run(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("report job failed", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "failed to generate reports")
		return
	}

	h.logger.Info("report job finished",
		zap.Int("matched", summary.Matched),
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
	)
	respond.JSON(w, r, http.StatusOK, summary)
}

// authorized — общий секрет для триггера; пустой токен отключает проверку
func (h *JobHandler) authorized(r *http.Request) bool {
	return h.token == "" || r.Header.Get("X-Job-Token") == h.token
}
