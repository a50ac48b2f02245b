package services

import (
	"context"
	"fmt"
	"strings"

	"intakealert/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendgridHost = "https://api.sendgrid.com"

// ServiceMailer delivers clinician notifications over SendGrid. With no API
// key configured every send is a logged no-op, never an error.
type ServiceMailer struct {
	apiKey    string
	fromEmail string
	baseURL   string
	logger    zerolog.Logger
}

func NewServiceMailer(container *do.Injector) (*ServiceMailer, error) {
	logger, err := do.Invoke[zerolog.Logger](container)
	if err != nil {
		return nil, err
	}

	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	return &ServiceMailer{
		apiKey:    vs["SENDGRID_API_KEY"],
		fromEmail: vs["FROM_EMAIL"],
		baseURL:   vs["SITE_BASE_URL"],
		logger:    logger,
	}, nil
}

func (service *ServiceMailer) Notify(ctx context.Context, doctor *models.Doctor, submission *models.PatientSubmission, payloads []models.RedFlagPayload) error {
	subject := fmt.Sprintf("Red flags observed for patient %s", submission.PatientID)
	return service.send(ctx, doctor, subject, service.redFlagBody(doctor, submission, payloads))
}

func (service *ServiceMailer) NotifyDigest(ctx context.Context, doctor *models.Doctor, submissions []*models.PatientSubmission) error {
	subject := fmt.Sprintf("Daily intake digest: %d flagged submission(s)", len(submissions))
	return service.send(ctx, doctor, subject, service.digestBody(doctor, submissions))
}

func (service *ServiceMailer) send(ctx context.Context, doctor *models.Doctor, subject, htmlBody string) error {
	dispatchID := uuid.NewString()

	if service.apiKey == "" {
		service.logger.Warn().
			Str("dispatch_id", dispatchID).
			Str("doctor_email", doctor.Email).
			Msg("SENDGRID_API_KEY not configured; email not sent")
		return nil
	}

	from := mail.NewEmail("Intake Alerts", service.fromEmail)
	to := mail.NewEmail(doctor.Name, doctor.Email)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	request := sendgrid.GetRequest(service.apiKey, "/v3/mail/send", sendgridHost)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", response.StatusCode, response.Body)
	}

	service.logger.Info().
		Str("dispatch_id", dispatchID).
		Str("doctor_email", doctor.Email).
		Int("status", response.StatusCode).
		Msg("notification email sent")
	return nil
}

func (service *ServiceMailer) redFlagBody(doctor *models.Doctor, submission *models.PatientSubmission, payloads []models.RedFlagPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dr. %s,</p>", doctor.Name)
	fmt.Fprintf(&b, "<p>Submission <strong>%s</strong> (patient %s) triggered the following red flags:</p><ul>", submission.RecordID, submission.PatientID)
	for _, payload := range payloads {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s): %s", payload.RedFlag.RedFlagID, payload.RedFlag.Severity, payload.DoctorText)
		if payload.RedFlag.DoctorVideoURL != "" {
			fmt.Fprintf(&b, ` — <a href="%s">video</a>`, payload.RedFlag.DoctorVideoURL)
		}
		fmt.Fprintf(&b, `<br/>Patient guidance: %s</li>`, payload.PatientText)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, `<p><a href="%s/doctor/submissions/%s">Review the full submission</a></p>`, service.baseURL, submission.RecordID)
	return b.String()
}

func (service *ServiceMailer) digestBody(doctor *models.Doctor, submissions []*models.PatientSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dr. %s,</p><p>Flagged submissions in the last 24 hours:</p><ul>", doctor.Name)
	for _, submission := range submissions {
		fmt.Fprintf(&b, "<li>%s (%s), received %s</li>",
			submission.RecordID, strings.Join(submission.RedFlagIDs, ", "), submission.CreatedAt.Format("2006-01-02 15:04 MST"))
	}
	b.WriteString("</ul>")
	return b.String()
}
