package mail

import (
	"context"
	"fmt"

	"github.com/brewlogic/BrewLogic/app/models"
)

// PlanNotifier tells members that their plan is active.
type PlanNotifier struct {
	Sender Sender
}

func (n PlanNotifier) PlanActivated(ctx context.Context, user *models.User) error {
	to := user.Email
	if to == "" {
		to = user.Username
	}
	body := fmt.Sprintf("Paket %s Anda sudah aktif.", user.PlanName())
	if user.SubscriptionEnd != nil {
		body += fmt.Sprintf(" Berlaku hingga %s.", user.SubscriptionEnd.Format("02 Jan 2006"))
	}
	return n.Sender.Send(ctx, Message{
		ToName:  user.Name,
		ToEmail: to,
		Subject: "Membership BrewLogic aktif",
		Body:    body,
	})
}
