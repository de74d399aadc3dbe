package httpserver

import (
	"errors"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

// validatable is satisfied by request payloads carrying field rules.
type validatable interface {
	Validate() error
}

// checkValid runs field validation and, on failure, writes the
// {"errors":[{"msg":...}]} response with one entry per failed field.
// It reports whether the request may proceed.
func checkValid(w http.ResponseWriter, req validatable) bool {
	err := req.Validate()
	if err == nil {
		return true
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return false
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fieldErrs[field].Error())
	}
	writeErrors(w, http.StatusBadRequest, msgs...)
	return false
}
