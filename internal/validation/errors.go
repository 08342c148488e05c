package validation

import "strings"

// FieldError is a single failed rule on a form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// Errors collects field errors in the order the rules were checked.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a failed rule for field
func (e *Errors) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Empty reports whether no rule failed
func (e *Errors) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// For returns the messages reported for field.
func (e *Errors) For(field string) []string {
	if e == nil {
		return nil
	}
	var msgs []string
	for _, f := range e.Fields {
		if f.Field == field {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// OrNil returns e as an error, or nil when it is empty. It keeps a nil
// *Errors from turning into a non-nil error interface.
func (e *Errors) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Single builds an Errors holding one message.
func Single(field, msg string) *Errors {
	e := &Errors{}
	e.Add(field, msg)
	return e
}
