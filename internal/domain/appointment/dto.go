package appointment

import (
	"time"

	"github.com/google/uuid"
)

// CreateAppointmentRequest books a slot
type CreateAppointmentRequest struct {
	ScheduleID uuid.UUID `json:"scheduleId" validate:"required"`
	Note       string    `json:"note,omitempty" validate:"max=500"`
}

// AppointmentResponse represents a booking returned to the frontend
type AppointmentResponse struct {
	ID           uuid.UUID `json:"id"`
	ScheduleID   uuid.UUID `json:"scheduleId"`
	ServiceID    uuid.UUID `json:"serviceId"`
	ServiceName  string    `json:"serviceName"`
	ProviderID   uuid.UUID `json:"providerId"`
	ProviderName string    `json:"providerName"`
	CustomerName string    `json:"customerName,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Price        int64     `json:"price"`
	Status       Status    `json:"status"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DateGroup is one calendar day of appointments, as booking lists render them
type DateGroup struct {
	Date         string                 `json:"date"`
	Appointments []*AppointmentResponse `json:"appointments"`
}

// ToResponse converts a joined appointment row
func ToResponse(d *Detail) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:           d.ID,
		ScheduleID:   d.ScheduleID,
		ServiceID:    d.ServiceID,
		ServiceName:  d.ServiceName,
		ProviderID:   d.ProviderID,
		ProviderName: d.ProviderName,
		CustomerName: d.CustomerName,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		Price:        d.Price,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
	if d.Note.Valid {
		resp.Note = d.Note.String
	}
	return resp
}

// ToResponseList converts joined appointment rows
func ToResponseList(details []*Detail) []*AppointmentResponse {
	out := make([]*AppointmentResponse, 0, len(details))
	for _, d := range details {
		out = append(out, ToResponse(d))
	}
	return out
}

// GroupByDate buckets appointments by the calendar day of their start time,
// keeping the incoming order inside each group. Every appointment lands in
// exactly one group.
func GroupByDate(details []*Detail) []*DateGroup {
	var groups []*DateGroup
	index := map[string]*DateGroup{}

	for _, d := range details {
		date := d.StartTime.Format("2006-01-02")
		g, ok := index[date]
		if !ok {
			g = &DateGroup{Date: date}
			index[date] = g
			groups = append(groups, g)
		}
		g.Appointments = append(g.Appointments, ToResponse(d))
	}

	return groups
}
