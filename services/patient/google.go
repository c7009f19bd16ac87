package patient

import (
	"context"
	"errors"

	"medlink/models"
	"medlink/services/auth"
	"medlink/utils"

	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

// GoogleIdentity is what a verified Google ID token tells us about a user.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// IDTokenVerifier checks Google ID tokens against the configured client id.
type IDTokenVerifier struct {
	ClientID string
}

func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, credential, v.ClientID)
	if err != nil {
		return nil, err
	}
	identity := &GoogleIdentity{Subject: payload.Subject}
	identity.Email, _ = payload.Claims["email"].(string)
	identity.Name, _ = payload.Claims["name"].(string)
	identity.Picture, _ = payload.Claims["picture"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("google email is not verified")
	}
	if identity.Email == "" {
		return nil, errors.New("google token has no email")
	}
	return identity, nil
}

// GoogleLogin logs in the patient owning the Google account's email,
// creating one on first use.
func (s *DefaultPatientService) GoogleLogin(ctx context.Context, credential string) (*models.AuthResponse, error) {
	if s.Google == nil {
		return nil, utils.NewError(utils.ErrValidation, "Google login is not enabled")
	}
	identity, err := s.Google.Verify(ctx, credential)
	if err != nil {
		utils.GetLogger().Warn("GoogleLogin: token rejected", zap.Error(err))
		return nil, utils.WrapError(utils.ErrUnauthorized, "Invalid Google credential", err)
	}

	email := normalizeEmail(identity.Email)
	p, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Login failed, please try again", err)
	}

	if p == nil {
		name := identity.Name
		if name == "" {
			name = email
		}
		p = newPatient(name, email)
		p.GoogleID = identity.Subject
		if identity.Picture != "" {
			p.Image = identity.Picture
		}
		if err := s.Repo.Create(ctx, p); err != nil {
			return nil, createError(err)
		}
		utils.GetLogger().Info("Patient registered with Google", zap.String("patientID", p.ID))
	} else if p.GoogleID == "" {
		if err := s.Repo.LinkGoogleAccount(ctx, p.ID, identity.Subject); err != nil {
			utils.GetLogger().Warn("GoogleLogin: failed to link account", zap.String("patientID", p.ID), zap.Error(err))
		}
	}

	return auth.Issue(p.ID, p.Name, p.Email, models.RolePatient)
}
