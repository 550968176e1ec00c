package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentResponse ответ с данными записи на приём
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	DisplayName string  `json:"displayName"`
	Email       string  `json:"email"`
	ScheduledAt string  `json:"scheduledAt"` // "2025-03-10 14:30"
	RemindedAt  *string `json:"remindedAt,omitempty"` // ISO 8601
	CreatedAt   string  `json:"createdAt"` // ISO 8601
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		ScheduledAt: a.FormattedScheduledAt(),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}

	if a.RemindedAt != nil {
		remindedStr := a.RemindedAt.Format(time.RFC3339)
		resp.RemindedAt = &remindedStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}
