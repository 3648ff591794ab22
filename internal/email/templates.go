// Package email renders the transactional emails the auth flows send.
// Rendering is pure: no I/O, called before dispatch.
package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Rendered is a template output ready to hand to a mailer.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// OTPData is the input for both OTP templates.
type OTPData struct {
	Name        string
	Code        string
	CompanyName string
	CompanyLogo string
	Expiry      time.Duration
}

var otpHTML = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;background:#f4f4f7;font-family:Helvetica,Arial,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:32px 16px;">
      <table role="presentation" width="480" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
        {{if .CompanyLogo}}<tr><td align="center" style="padding-bottom:16px;">
          <img src="{{.CompanyLogo}}" width="40" height="40" alt="{{.CompanyName}}">
        </td></tr>{{end}}
        <tr><td align="center" style="font-size:22px;font-weight:bold;color:#111827;padding-bottom:16px;">{{.Heading}}</td></tr>
        <tr><td style="font-size:15px;color:#4b5563;line-height:1.6;">Hi {{.Name}},</td></tr>
        <tr><td style="font-size:15px;color:#4b5563;line-height:1.6;padding-top:8px;">{{.Intro}}</td></tr>
        <tr><td align="center" style="padding:24px 0;">
          <div style="background:#f9fafb;border:1px dashed #e5e7eb;border-radius:8px;padding:20px;">
            <div style="font-size:11px;letter-spacing:2px;color:#9ca3af;font-weight:600;">YOUR CODE</div>
            <div style="font-size:32px;font-family:monospace;font-weight:bold;letter-spacing:10px;color:#111827;">{{.Code}}</div>
          </div>
        </td></tr>
        <tr><td style="font-size:13px;color:#6b7280;line-height:1.6;">This code expires in {{.ExpiryMinutes}} minutes. If you did not request it, you can safely ignore this email.</td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

type otpTemplateData struct {
	Name          string
	Code          string
	CompanyName   string
	CompanyLogo   string
	Heading       string
	Intro         string
	ExpiryMinutes int
}

func renderOTP(d OTPData, heading, intro string) Rendered {
	name := d.Name
	if name == "" {
		name = "there"
	}
	minutes := int(d.Expiry.Minutes())
	if minutes < 1 {
		minutes = 1
	}

	var html strings.Builder
	_ = otpHTML.Execute(&html, otpTemplateData{
		Name:          name,
		Code:          d.Code,
		CompanyName:   d.CompanyName,
		CompanyLogo:   d.CompanyLogo,
		Heading:       heading,
		Intro:         intro,
		ExpiryMinutes: minutes,
	})

	text := fmt.Sprintf(`Hi %s,

%s

Your code: %s

This code expires in %d minutes. If you did not request it, you can safely ignore this email.

The %s Team`, name, intro, d.Code, minutes, d.CompanyName)

	return Rendered{HTML: html.String(), Text: text}
}

// SignupOTP renders the account-verification email sent on signup and
// resend.
func SignupOTP(d OTPData) Rendered {
	r := renderOTP(d,
		"Verify your email",
		fmt.Sprintf("Thanks for starting your journey with %s. Use the following verification code to complete your registration.", d.CompanyName),
	)
	r.Subject = "Your OTP for Account Verification"
	return r
}

// ResetOTP renders the password-reset email.
func ResetOTP(d OTPData) Rendered {
	r := renderOTP(d,
		"Reset your password",
		fmt.Sprintf("We received a request to reset the password for your %s account. Use the following code to continue.", d.CompanyName),
	)
	r.Subject = "Your Password Reset Code"
	return r
}
