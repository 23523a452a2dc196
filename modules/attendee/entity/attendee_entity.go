package entity

import (
	"time"

	"github.com/google/uuid"
)

type AttendeeStatus string

const (
	AttendeeStatusPending  AttendeeStatus = "Pending"
	AttendeeStatusApproved AttendeeStatus = "Approved"
)

type Attendee struct {
	ID                uuid.UUID      `db:"id" json:"id"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
	Name              string         `db:"name" json:"name"`
	Email             string         `db:"email" json:"email"`
	Phone             string         `db:"phone" json:"phone"`
	University        string         `db:"university" json:"university"`
	Department        string         `db:"department" json:"department"`
	Year              string         `db:"year" json:"year"`
	Theme             string         `db:"theme" json:"theme"`
	ParticipationType string         `db:"participation_type" json:"participation_type"`
	TeamName          string         `db:"team_name" json:"team_name"`
	Note              string         `db:"note" json:"note"`
	PasswordHash      string         `db:"password_hash" json:"-"`
	Status            AttendeeStatus `db:"status" json:"status"`
	Linkedin          string         `db:"linkedin" json:"linkedin"`
	Instagram         string         `db:"instagram" json:"instagram"`
	Github            string         `db:"github" json:"github"`
	Slug              string         `db:"slug" json:"slug"`
}
