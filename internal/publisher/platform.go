package publisher

import "strings"

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

var displayNames = map[Platform]string{
	PlatformTwitter:   "Twitter",
	PlatformFacebook:  "Facebook",
	PlatformInstagram: "Instagram",
	PlatformLinkedIn:  "LinkedIn",
}

// ParsePlatform maps a stored platform tag to a known Platform. Tags are
// matched case-insensitively; anything else is an UnsupportedPlatformError.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := displayNames[p]; !ok {
		return "", &UnsupportedPlatformError{Platform: s}
	}
	return p, nil
}

// Name is the human readable platform name used in error messages.
func (p Platform) Name() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

func (p Platform) String() string {
	return string(p)
}
