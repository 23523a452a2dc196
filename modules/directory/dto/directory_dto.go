package dto

// PublicAttendee is the public-safe projection used by the browse and
// slug-profile surfaces. No phone, no credential material.
type PublicAttendee struct {
	Name              string `json:"name"`
	Theme             string `json:"theme"`
	Bio               string `json:"bio"`
	ParticipationType string `json:"participation_type"`
	University        string `json:"university"`
	Linkedin          string `json:"linkedin"`
	Instagram         string `json:"instagram"`
	Github            string `json:"github"`
	Slug              string `json:"slug"`
	Connections       int    `json:"connections"`
}

type PublicDirectoryResponse struct {
	Attendees []PublicAttendee `json:"attendees"`
	Total     int              `json:"total"`
}
