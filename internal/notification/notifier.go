package notification

import (
	"context"
	"fmt"
	"log"
	"os"

	"backend/internal/model"
	"backend/internal/repository"
)

// Notifier fires email side effects for request lifecycle events. Every send
// is best-effort and at-most-once: a transport failure is logged and swallowed
// so it can never roll back or fail the mutation that triggered it.
type Notifier struct {
	sender Sender
	users  repository.UserRepository
}

func NewNotifier(sender Sender, users repository.UserRepository) *Notifier {
	return &Notifier{sender: sender, users: users}
}

func recipientName(u *model.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// NotifyAdminsNewRequest tells every admin a new request is waiting. Each
// recipient is an independent send; one failed delivery does not stop the
// others.
func (n *Notifier) NotifyAdminsNewRequest(ctx context.Context, kind string, requester *model.User, lines []string) {
	admins, err := n.users.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		log.Printf("notification: failed to list admins for new %s request: %v", kind, err)
		return
	}

	subject := fmt.Sprintf("New %s request from %s", kind, recipientName(requester))
	body := append([]string{
		fmt.Sprintf("%s submitted a new %s request that needs review.", recipientName(requester), kind),
	}, lines...)

	for _, admin := range admins {
		html, text, err := render(templateData{
			Recipient:   recipientName(&admin),
			BannerText:  subject,
			BannerColor: bannerColor(model.StatusPending),
			Lines:       body,
		})
		if err != nil {
			log.Printf("notification: render failed for %s: %v", admin.Email, err)
			continue
		}

		if err := n.sender.Send(Message{To: admin.Email, Subject: subject, HTML: html, Text: text}); err != nil {
			log.Printf("notification: send to %s failed: %v", admin.Email, err)
		}
	}
}

// NotifyDecision tells the requester their request changed status.
func (n *Notifier) NotifyDecision(kind string, requester *model.User, status model.RequestStatus, reason string, lines []string) {
	subject := fmt.Sprintf("Your %s request was %s", kind, statusWord(status))

	body := append([]string{
		fmt.Sprintf("Your %s request has been %s.", kind, statusWord(status)),
	}, lines...)
	if status == model.StatusRejected && reason != "" {
		body = append(body, "Reason: "+reason)
	}

	html, text, err := render(templateData{
		Recipient:   recipientName(requester),
		BannerText:  subject,
		BannerColor: bannerColor(status),
		Lines:       body,
	})
	if err != nil {
		log.Printf("notification: render failed for %s: %v", requester.Email, err)
		return
	}

	if err := n.sender.Send(Message{To: requester.Email, Subject: subject, HTML: html, Text: text}); err != nil {
		log.Printf("notification: send to %s failed: %v", requester.Email, err)
	}
}

// SendWelcome greets a newly created user. Gated by WELCOME_EMAIL_ENABLED.
func (n *Notifier) SendWelcome(user *model.User) {
	if os.Getenv("WELCOME_EMAIL_ENABLED") != "true" {
		return
	}

	subject := "Welcome to WorkHub"
	html, text, err := render(templateData{
		Recipient:   recipientName(user),
		BannerText:  subject,
		BannerColor: bannerColor(model.StatusPending),
		Lines: []string{
			"Your WorkHub account is ready.",
			"You can now submit vacation, asset and supply requests from the portal.",
		},
	})
	if err != nil {
		log.Printf("notification: render welcome failed for %s: %v", user.Email, err)
		return
	}

	if err := n.sender.Send(Message{To: user.Email, Subject: subject, HTML: html, Text: text}); err != nil {
		log.Printf("notification: welcome send to %s failed: %v", user.Email, err)
	}
}

func statusWord(status model.RequestStatus) string {
	switch status {
	case model.StatusApproved:
		return "approved"
	case model.StatusRejected:
		return "rejected"
	case model.StatusCancelled:
		return "cancelled"
	case model.StatusFulfilled:
		return "fulfilled"
	default:
		return "updated"
	}
}
