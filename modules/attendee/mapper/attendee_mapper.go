package mapper

import (
	"sampark-api/modules/attendee/dto"
	"sampark-api/modules/attendee/entity"
)

func ToAttendeeResponse(a *entity.Attendee) *dto.AttendeeResponse {
	return &dto.AttendeeResponse{
		ID:                a.ID.String(),
		Name:              a.Name,
		Email:             a.Email,
		Phone:             a.Phone,
		University:        a.University,
		Department:        a.Department,
		Year:              a.Year,
		Theme:             a.Theme,
		ParticipationType: a.ParticipationType,
		TeamName:          a.TeamName,
		Note:              a.Note,
		Status:            string(a.Status),
		Linkedin:          a.Linkedin,
		Instagram:         a.Instagram,
		Github:            a.Github,
		Slug:              a.Slug,
		CreatedAt:         a.CreatedAt,
	}
}

func ToAttendeeResponses(attendees []entity.Attendee) []dto.AttendeeResponse {
	out := make([]dto.AttendeeResponse, 0, len(attendees))
	for i := range attendees {
		out = append(out, *ToAttendeeResponse(&attendees[i]))
	}
	return out
}
