package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendWelcomeEmail sends the post-registration email. Callers are expected to
// run it in a goroutine; registration does not wait on it.
func SendWelcomeEmail(email string, username string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping welcome email")
		return nil
	}

	from := mail.NewEmail("authbox", "donotreply@authbox.dev")
	subject := "Welcome to authbox"
	to := mail.NewEmail(username, email)

	plainTextContent := fmt.Sprintf("Hi %s, your account has been created. You can now log in.", username)
	htmlContent := fmt.Sprintf("Hi %s,<br><br>Your account has been created. You can now <strong>log in</strong>.", username)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(apiKey)

	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}
