package views

import (
	"context"

	"storefront/models"
	"storefront/services"
	"storefront/utils"
)

// LoginOutcome is the result of a login attempt. Exactly one of Session and
// Err is set.
type LoginOutcome struct {
	Session *models.Session
	Err     error
}

func (o LoginOutcome) Succeeded() bool {
	return o.Err == nil && o.Session != nil
}

// Message is what the login screen shows for this outcome.
func (o LoginOutcome) Message() string {
	if o.Succeeded() {
		return "Welcome, " + o.Session.DisplayName
	}
	return utils.UserMessage(o.Err)
}

type LoginView struct {
	auth *services.AuthService
}

func NewLoginView(auth *services.AuthService) *LoginView {
	return &LoginView{auth: auth}
}

func (v *LoginView) Submit(ctx context.Context, email, password string) LoginOutcome {
	session, err := v.auth.Login(ctx, email, password)
	if err != nil {
		return LoginOutcome{Err: err}
	}
	return LoginOutcome{Session: session}
}

func (v *LoginView) DemoIdentities(ctx context.Context) ([]models.DemoIdentity, error) {
	return v.auth.ListDemoIdentities(ctx)
}

func (v *LoginView) State(ctx context.Context) services.AuthState {
	return v.auth.State(ctx)
}

func (v *LoginView) Logout(ctx context.Context) error {
	return v.auth.Logout(ctx)
}
