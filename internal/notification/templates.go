package notification

import (
	"fmt"
	"html/template"
	"strings"

	"backend/internal/model"
)

// Every outbound email shares one skeleton: branded header, status-colored
// banner, body lines, footer. The plaintext alternative carries the same
// content without markup.
const emailSkeleton = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px 0;">
      <table width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td style="background:#1f2937;color:#ffffff;padding:20px 32px;font-size:20px;font-weight:bold;">
          WorkHub
        </td></tr>
        <tr><td style="background:{{.BannerColor}};color:#ffffff;padding:12px 32px;font-size:16px;font-weight:bold;">
          {{.BannerText}}
        </td></tr>
        <tr><td style="padding:24px 32px;color:#374151;font-size:14px;line-height:1.6;">
          <p>Hi {{.Recipient}},</p>
          {{range .Lines}}<p>{{.}}</p>
          {{end}}
        </td></tr>
        <tr><td style="padding:16px 32px;background:#f9fafb;color:#9ca3af;font-size:12px;">
          This is an automated message from WorkHub. Please do not reply.
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

var emailTmpl = template.Must(template.New("email").Parse(emailSkeleton))

// templateData feeds the skeleton.
type templateData struct {
	Recipient   string
	BannerText  string
	BannerColor string
	Lines       []string
}

// bannerColor maps a request status to the banner background.
func bannerColor(status model.RequestStatus) string {
	switch status {
	case model.StatusApproved:
		return "#16a34a"
	case model.StatusRejected:
		return "#dc2626"
	case model.StatusCancelled:
		return "#6b7280"
	case model.StatusFulfilled:
		return "#0891b2"
	default:
		return "#d97706" // pending / informational
	}
}

// render produces the HTML and plaintext bodies for one message.
func render(data templateData) (html string, text string, err error) {
	var sb strings.Builder
	if err := emailTmpl.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render email template: %w", err)
	}

	var tb strings.Builder
	tb.WriteString("WorkHub\n")
	tb.WriteString(data.BannerText + "\n\n")
	tb.WriteString("Hi " + data.Recipient + ",\n\n")
	for _, line := range data.Lines {
		tb.WriteString(line + "\n")
	}
	tb.WriteString("\nThis is an automated message from WorkHub. Please do not reply.\n")

	return sb.String(), tb.String(), nil
}
