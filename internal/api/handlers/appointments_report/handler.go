package appointments_report

import (
	"html/template"
	"net/http"

	"github.com/m04kA/SMC-AppointmentBot/internal/api/handlers"
)

// reportTemplate HTML дашборд с таблицей записей
const reportTemplate = `<html><head><title>Appointments</title></head><body>
<h2>📅 Appointment Dashboard</h2>
<table border="1" cellpadding="6">
<tr><th>Username</th><th>Email</th><th>Date &amp; Time</th></tr>
{{range .Appointments}}<tr><td>{{.DisplayName}}</td><td>{{.Email}}</td><td>{{.ScheduledAt}}</td></tr>
{{end}}</table></body></html>`

type Handler struct {
	service AppointmentsService
	logger  Logger
	tpl     *template.Template
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		tpl:     template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Handle GET /api/v1/appointments/report
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments/report - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := h.tpl.Execute(w, appointments); err != nil {
		h.logger.Error("GET /appointments/report - Failed to render report: %v", err)
		return
	}

	h.logger.Info("GET /appointments/report - Rendered report with %d appointments", len(appointments.Appointments))
}
