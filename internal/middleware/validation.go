package middleware

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateQuestion validates a chat question.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question cannot be empty")
	}
	if len(question) > 10000 {
		return errors.New("question exceeds maximum length")
	}
	if !utf8.ValidString(question) {
		return errors.New("question must be valid UTF-8")
	}
	return nil
}

// ValidatePersona validates a persona path parameter.
func ValidatePersona(persona string) error {
	if len(persona) == 0 {
		return errors.New("persona cannot be empty")
	}
	if len(persona) > 64 {
		return errors.New("persona exceeds maximum length")
	}
	return nil
}
