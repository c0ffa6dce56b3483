package shared

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"opsdash/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Rule declares the checks for one form field. A Schema replaces the
// hand-written per-form predicates every add/edit screen used to carry.
type Rule struct {
	Field    string
	Required bool
	Positive bool
	Numeric  bool
	Date     bool
	MaxLen   int
	Pattern  *regexp.Regexp
	Enum     []string
}

type Schema []Rule

// Validate evaluates every rule against the raw field values returned by
// get, collecting one issue per failing field.
func (s Schema) Validate(get func(field string) string) *Validator {
	v := NewValidator()
	for _, rule := range s {
		value := strings.TrimSpace(get(rule.Field))

		if value == "" {
			if rule.Required {
				v.Add(rule.Field, "is required")
			}
			continue
		}

		if rule.MaxLen > 0 && len(value) > rule.MaxLen {
			v.Add(rule.Field, "must be at most "+strconv.Itoa(rule.MaxLen)+" characters")
		}
		if rule.Numeric || rule.Positive {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				v.Add(rule.Field, "must be a number")
			} else if rule.Positive && parsed <= 0 {
				v.Add(rule.Field, "must be greater than zero")
			}
		}
		if rule.Date {
			if parsed, err := ParseDate(value); err != nil || parsed.IsZero() {
				v.Add(rule.Field, "must be a valid date in YYYY-MM-DD format")
			}
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			v.Add(rule.Field, "has an invalid format")
		}
		if len(rule.Enum) > 0 {
			v.Enum(rule.Field, value, rule.Enum, "must be one of "+strings.Join(rule.Enum, ", "))
		}
	}
	return v
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{
		Field:  field,
		Reason: reason,
	})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToLower(strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, reason)
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

// ClientIP extracts the caller address for audit logging, preferring the
// forwarding header set by the ingress proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
