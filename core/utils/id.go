package utils

import (
	"strings"

	gslug "github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"sampark-api/core/constants"
)

func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}

// GeneratePublicSlug builds a shareable profile slug from the attendee
// name plus a random token, e.g. "jane-doe-k3xv9q2m". The random suffix
// keeps slugs unguessable; callers still verify non-collision against the
// store before accepting one.
func GeneratePublicSlug(name string) string {
	token, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", constants.SlugTokenLength)
	if err != nil {
		return ""
	}

	base := gslug.Make(name)
	if base == "" {
		return token
	}
	// Keep slugs short enough for a QR/NFC link.
	if len(base) > 32 {
		base = strings.Trim(base[:32], "-")
	}
	return base + "-" + token
}
