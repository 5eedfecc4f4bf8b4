package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptCredentials asks for whichever of email and password is missing.
func PromptCredentials(email, password string) (string, string, error) {
	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("demo@example.com").
			Value(&email).
			Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return errors.New("enter an email address")
				}
				return nil
			}))
	}
	if password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password))
	}
	if len(fields) == 0 {
		return email, password, nil
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(email), password, nil
}
