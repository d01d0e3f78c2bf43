package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/mailer"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

const (
	verificationCodeLength = 6
	verificationTTL        = 24 * time.Hour
	resetTokenTTL          = time.Hour
)

type SignupInput struct {
	Fullname string `json:"fullname" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Contact  string `json:"contact" validate:"required,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users       UserStore
	uploader    ImageUploader
	mail        Mailer
	frontendURL string
	now         func() time.Time
}

func NewAuthService(users UserStore, uploader ImageUploader, mail Mailer, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		uploader:    uploader,
		mail:        mail,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// Signup creates an unverified user and mails the verification code.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, helper.Validation("User already exists with this email")
	} else if !errors.Is(err, helper.ErrNotFound) {
		return nil, err
	}

	hash, err := helper.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	code, err := helper.GenerateVerificationCode(verificationCodeLength)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(verificationTTL)
	user := models.NewUser(in.Fullname, in.Email, hash, in.Contact, now)
	user.VerificationToken = code
	user.VerificationTokenExpiresAt = &expires

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendBestEffort(ctx, mailer.VerificationEmail(user.Email, code))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, helper.ErrNotFound) {
		return nil, helper.Validation("Incorrect email or password")
	} else if err != nil {
		return nil, err
	}
	if !helper.VerifyPassword(in.Password, user.Password) {
		return nil, helper.Validation("Incorrect email or password")
	}

	user.LastLogin = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, helper.Validation("Verification code is required")
	}

	now := s.now()
	user, err := s.users.FindByVerificationToken(ctx, code, now)
	if errors.Is(err, helper.ErrNotFound) {
		return nil, helper.Validation("Invalid or expired verification token")
	} else if err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpiresAt = nil
	user.Updated_at = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.sendBestEffort(ctx, mailer.WelcomeEmail(user.Email, user.Fullname))
	return user, nil
}

// ForgotPassword stores a one hour reset token and mails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return helper.Validation("Email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, helper.ErrNotFound) {
		return helper.Validation("User doesn't exist")
	} else if err != nil {
		return err
	}

	token, err := helper.GenerateResetToken()
	if err != nil {
		return err
	}
	now := s.now()
	expires := now.Add(resetTokenTTL)
	user.ResetPasswordToken = token
	user.ResetPasswordTokenExpiresAt = &expires
	user.Updated_at = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	msg := mailer.PasswordResetEmail(user.Email, s.frontendURL+"/resetpassword/"+token)
	if err := s.mail.Send(ctx, msg); err != nil {
		return helper.BadGateway("Failed to send password reset email", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return helper.Validation("Password must be at least 6 characters")
	}

	now := s.now()
	user, err := s.users.FindByResetToken(ctx, token, now)
	if errors.Is(err, helper.ErrNotFound) {
		return helper.Validation("Invalid or expired reset token")
	} else if err != nil {
		return err
	}

	hash, err := helper.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	user.ResetPasswordToken = ""
	user.ResetPasswordTokenExpiresAt = nil
	user.Updated_at = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.sendBestEffort(ctx, mailer.ResetSuccessEmail(user.Email))
	return nil
}

func (s *AuthService) CheckAuth(ctx context.Context, userID string) (*models.User, error) {
	id, err := objectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// UpdateProfile uploads the new profile picture and applies the changed fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.User, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return nil, err
	}
	if in.ProfilePicture == "" {
		return nil, helper.Validation("Profile picture is required")
	}

	user, err := s.CheckAuth(ctx, userID)
	if err != nil {
		return nil, err
	}

	pictureURL, err := s.uploader.Upload(ctx, in.ProfilePicture)
	if err != nil {
		return nil, helper.BadGateway("Failed to upload image", err)
	}

	in.Apply(user)
	user.ProfilePicture = pictureURL
	user.Updated_at = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) sendBestEffort(ctx context.Context, msg mailer.Message) {
	if err := s.mail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "email delivery failed", "subject", msg.Subject, "error", err)
	}
}
