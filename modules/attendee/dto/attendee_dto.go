package dto

import "time"

type RegisterRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	University        string `json:"university"`
	Department        string `json:"department"`
	Year              string `json:"year"`
	Theme             string `json:"theme"`
	ParticipationType string `json:"participation_type"`
	TeamName          string `json:"team_name"`
	Note              string `json:"note"`
}

type RegisterResponse struct {
	Slug    string `json:"slug"`
	Message string `json:"message"`
}

type UpdateProfileRequest struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	University        string `json:"university"`
	Department        string `json:"department"`
	Year              string `json:"year"`
	Theme             string `json:"theme"`
	ParticipationType string `json:"participation_type"`
	TeamName          string `json:"team_name"`
	Note              string `json:"note"`
	Linkedin          string `json:"linkedin"`
	Instagram         string `json:"instagram"`
	Github            string `json:"github"`
}

// AttendeeResponse is the profile shape returned to the attendee
// themselves and to the admin console.
type AttendeeResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	University        string    `json:"university"`
	Department        string    `json:"department"`
	Year              string    `json:"year"`
	Theme             string    `json:"theme"`
	ParticipationType string    `json:"participation_type"`
	TeamName          string    `json:"team_name"`
	Note              string    `json:"note"`
	Status            string    `json:"status"`
	Linkedin          string    `json:"linkedin"`
	Instagram         string    `json:"instagram"`
	Github            string    `json:"github"`
	Slug              string    `json:"slug"`
	CreatedAt         time.Time `json:"created_at"`
}

type AdminUpdateRequest struct {
	UpdateProfileRequest
}

type BackfillSlugsResponse struct {
	Updated int `json:"updated"`
}
