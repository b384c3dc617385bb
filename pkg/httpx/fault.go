package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumonhq/persons/pkg/slogx"
)

// Envelope is the uniform error body returned by every endpoint.
type Envelope struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}

// Rule maps a class of errors to an HTTP status. Message overrides the
// error text when non-empty; otherwise the error's own text is used.
type Rule struct {
	Matches func(error) bool
	Status  int
	Message string
}

// MapTo builds a rule matching errors.Is against target.
func MapTo(target error, status int) Rule {
	return Rule{
		Matches: func(err error) bool { return errors.Is(err, target) },
		Status:  status,
	}
}

// MapToMsg is MapTo with a fixed client-facing message.
func MapToMsg(target error, status int, msg string) Rule {
	r := MapTo(target, status)
	r.Message = msg
	return r
}

// Mapper translates service errors into fault envelopes. Rules are checked
// in order and the first match wins; anything unmatched becomes a 500 that
// keeps the original error text.
type Mapper struct {
	rules []Rule
}

func NewMapper(rules ...Rule) *Mapper {
	return &Mapper{rules: rules}
}

// WriteError resolves err through the rule chain and writes the envelope.
func (m *Mapper) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	for _, rule := range m.rules {
		if rule.Matches(err) {
			status = rule.Status
			if rule.Message != "" {
				msg = rule.Message
			}
			break
		}
	}

	if status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("error", err.Error()),
			slog.Int("status", status),
		)
	}

	WriteJSON(w, status, Envelope{
		Timestamp: time.Now().UTC(),
		Message:   msg,
		Details:   r.Method + " " + r.URL.Path,
	})
}
