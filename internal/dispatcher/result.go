package dispatcher

import (
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
)

// Status is the HTTP-like outcome of a dispatch.
type Status int

const (
	StatusOK       Status = 200
	StatusNotFound Status = 404
)

func (s Status) String() string {
	return strconv.Itoa(int(s))
}

// ContentType is reported for every response body, including the plain-text
// diagnostics written by item lookups.
const ContentType = "application/json"

// Result is what a transport sends back for one request.
type Result struct {
	Status Status
	Body   string
	// Redraw is set only when an action ran and returned StatusOK.
	Redraw bool
	// Err carries the typed failure, if any. It is nil on success and when a
	// widget did not provide the capability its kind promised.
	Err error
}

func failure(err *Error) Result {
	var body strings.Builder
	writeJSONError(&body, err.Message)
	return Result{Status: StatusNotFound, Body: body.String(), Err: err}
}

// Unavailable is reported when the UI thread went away before a request
// could run, which leaves no dialog to act on.
func Unavailable() Result {
	return failure(ErrNoDialogOpen)
}

// writeJSONError writes {"error":"<msg>"} followed by a newline.
func writeJSONError(w io.Writer, msg string) {
	doc, err := sjson.Set("", "error", msg)
	if err != nil {
		doc = `{"error":"` + msgUnknownAction + `"}`
	}
	io.WriteString(w, doc+"\n")
}

func writeLine(w io.Writer, line string) {
	io.WriteString(w, line+"\n")
}

// Atoi converts s the way C atoi does: optional leading whitespace and sign,
// then as many decimal digits as are present. Anything else yields 0.
func Atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\v' || s[i] == '\f') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if start == i {
		return 0
	}
	n, err := strconv.ParseInt(s[start:i], 10, 32)
	if err != nil {
		// out of int32 range; saturate like most libc implementations
		if neg {
			return -1 << 31
		}
		return 1<<31 - 1
	}
	if neg {
		return int(-n)
	}
	return int(n)
}
