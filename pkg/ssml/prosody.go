package ssml

import (
	"strconv"
	"strings"
)

// Prosody wraps text in a prosody element speaking at ratePercent of the
// normal rate. The text is written as is; it may already contain markup.
func Prosody(ratePercent int64, text string) string {
	var b strings.Builder
	b.WriteString(`<prosody rate="`)
	b.WriteString(strconv.FormatInt(ratePercent, 10))
	b.WriteString(`%">`)
	b.WriteString(text)
	b.WriteString(`</prosody>`)
	return b.String()
}
