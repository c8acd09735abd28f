package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aalexmrt/portfolio/internal/contactform"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Contact form commands",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message through the contact form endpoint",
	Long: `Send a message through a site's /api/contact endpoint, applying the same
checks as the web form.

Example:
  portfolio contact send --name Jane --email jane@example.com --message "Hello" --bypass
  echo "Hello" | portfolio contact send --url https://example.com --name Jane \
    --email jane@example.com --message - --token <turnstile-token>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("url")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		message, _ := cmd.Flags().GetString("message")
		token, _ := cmd.Flags().GetString("token")
		bypass, _ := cmd.Flags().GetBool("bypass")

		if message == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read message from stdin: %w", err)
			}
			message = string(data)
		}

		endpoint, err := url.JoinPath(strings.TrimRight(baseURL, "/"), "api", "contact")
		if err != nil {
			return fmt.Errorf("invalid --url: %w", err)
		}

		form := contactform.New(endpoint, contactform.StaticToken(token))
		form.BypassMode = bypass
		form.ResetDelay = -1
		form.SetName(name)
		form.SetEmail(email)
		form.SetMessage(message)

		if err := form.Validate(); err != nil {
			var valErr *contactform.ValidationError
			if errors.As(err, &valErr) {
				for _, f := range valErr.Fields {
					logger.Warn("Invalid %s (%s)", strings.ToLower(f.Field), f.Tag)
				}
			}
			return err
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Sending message..."
		s.Start()
		id, err := form.Submit(cmd.Context())
		s.Stop()

		if err != nil {
			return err
		}

		logger.Info("Message sent successfully! (id %s)", id)
		return nil
	},
}
