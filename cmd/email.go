/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundprint/soundprint/internal/config"
)

type SendEmailConfig struct {
	From           string
	To             string
	DryRun         bool
	SMTPUsername   string
	SMTPPassword   string
	SendgridApiKey string
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <export.json...>",
	Short: "Emails a listener profile report",
	Long: `Analyzes the given streaming history exports and emails the resulting
profile to the specified address. Uses SendGrid when an API key is
configured, plain SMTP otherwise.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		emailConfig := SendEmailConfig{
			From:           viper.GetString("from"),
			To:             args[0],
			DryRun:         viper.GetBool("dryRun"),
			SMTPUsername:   viper.GetString("smtp_username"),
			SMTPPassword:   viper.GetString("smtp_password"),
			SendgridApiKey: viper.GetString("sendgrid_api_key"),
		}
		if err := sendEmail(cmd.Context(), emailConfig, args[1:]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))
}

func sendEmail(ctx context.Context, emailConfig SendEmailConfig, files []string) error {
	cfg := config.Default()
	report, err := buildReport(ctx, files, cfg, false, false)
	if err != nil {
		return err
	}

	subject, body, err := generateEmailContent(report)
	if err != nil {
		return err
	}

	if emailConfig.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	if emailConfig.SendgridApiKey != "" {
		from := mail.NewEmail("soundprint", emailConfig.From)
		to := mail.NewEmail(emailConfig.To, emailConfig.To)
		message := mail.NewSingleEmail(from, subject, to, body, body)
		client := sendgrid.NewSendClient(emailConfig.SendgridApiKey)
		if _, err := client.Send(message); err != nil {
			return fmt.Errorf("sendEmail: %w", err)
		}
		return nil
	}

	if emailConfig.SMTPUsername == "" || emailConfig.SMTPPassword == "" {
		return fmt.Errorf("smtp_username and smtp_password must be set in order to send emails")
	}

	msg := "From: soundprint <" + emailConfig.From + ">\r\n" +
		"To: " + emailConfig.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		body

	auth := smtp.PlainAuth("", emailConfig.SMTPUsername, emailConfig.SMTPPassword, "smtp.gmail.com")
	if err := smtp.SendMail("smtp.gmail.com:587", auth, emailConfig.From, []string{emailConfig.To}, []byte(msg)); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	return nil
}

func generateEmailContent(report profileReport) (subject string, body string, err error) {
	rendered, err := renderTables(report)
	if err != nil {
		return "", "", err
	}

	profile := report.Profile
	subject = fmt.Sprintf("Listener profile %s to %s: %s",
		profile.DateRange.Start.Format("2006-01-02"),
		profile.DateRange.End.Format("2006-01-02"),
		profile.Archetype.Primary)

	body = "<html><body><pre>\n" + html.EscapeString(rendered) + "</pre></body></html>\n"
	return subject, body, nil
}
