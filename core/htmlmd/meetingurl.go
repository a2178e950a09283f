package htmlmd

import "regexp"

// Provider URL shapes, in priority order. When several providers appear in
// one body the highest-priority provider wins regardless of document order:
// Teams invites routinely embed help links for other platforms.
var providerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://teams\.microsoft\.com/l/meetup-join/[^"\s<>]+`),
	regexp.MustCompile(`https://[^\s]*zoom\.us/[^"\s<>]+`),
	regexp.MustCompile(`https://meet\.google\.com/[^"\s<>]+`),
}

// ExtractMeetingURL scans HTML or plain text for a video-conferencing join
// URL. It reports the first match for the highest-priority provider present
// (Teams, then Zoom, then Google Meet), or ok=false when nothing matches.
func ExtractMeetingURL(content string) (url string, ok bool) {
	if content == "" {
		return "", false
	}
	for _, re := range providerPatterns {
		if m := re.FindString(content); m != "" {
			return m, true
		}
	}
	return "", false
}
