package utils_test

import (
	"authbox/utils"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "Valid username should pass validation",
			username: "alice_99",
			wantErr:  false,
		},
		{
			name:     "Username too short should fail validation",
			username: "ab",
			wantErr:  true,
			errMsg:   "username must be between 3 and 32 characters",
		},
		{
			name:     "Username too long should fail validation",
			username: "a_very_long_username_that_goes_on_forever",
			wantErr:  true,
			errMsg:   "username must be between 3 and 32 characters",
		},
		{
			name:     "Username with spaces should fail validation",
			username: "alice smith",
			wantErr:  true,
			errMsg:   "username may only contain letters, digits and underscores",
		},
		{
			name:     "Username with symbols should fail validation",
			username: "alice<script>",
			wantErr:  true,
			errMsg:   "username may only contain letters, digits and underscores",
		},
		{
			name:     "Empty username should fail validation",
			username: "",
			wantErr:  true,
			errMsg:   "username must be between 3 and 32 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidateUsername() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{
			name:  "Valid email should pass validation",
			email: "user@example.com",
			want:  true,
		},
		{
			name:  "Valid email with plus addressing should pass validation",
			email: "user+tag@example.com",
			want:  true,
		},
		{
			name:  "Email missing @ symbol should fail validation",
			email: "userexample.com",
			want:  false,
		},
		{
			name:  "Email missing domain should fail validation",
			email: "user@",
			want:  false,
		},
		{
			name:  "Empty email should fail validation",
			email: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateEmail(tt.email)
			if (err == nil) != tt.want {
				t.Errorf("ValidateEmail() error = %v, wantErr = %v", err, !tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "Valid password should pass validation",
			password: "SecureP@ss123",
			wantErr:  false,
		},
		{
			name:     "Password too short should fail validation",
			password: "Abc1!",
			wantErr:  true,
			errMsg:   "password must be at least 8 characters long",
		},
		{
			name:     "Password without uppercase should fail validation",
			password: "securepass123!",
			wantErr:  true,
			errMsg:   "password must contain at least one uppercase letter",
		},
		{
			name:     "Password without lowercase should fail validation",
			password: "SECUREPASS123!",
			wantErr:  true,
			errMsg:   "password must contain at least one lowercase letter",
		},
		{
			name:     "Password without digits should fail validation",
			password: "SecurePass!",
			wantErr:  true,
			errMsg:   "password must contain at least one digit",
		},
		{
			name:     "Password without special characters should fail validation",
			password: "SecurePass123",
			wantErr:  true,
			errMsg:   "password must contain at least one special character",
		},
		{
			name:     "Empty password should fail validation",
			password: "",
			wantErr:  true,
			errMsg:   "password must be at least 8 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidatePassword() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
