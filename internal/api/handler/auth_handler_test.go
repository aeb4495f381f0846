package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "u1", Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/register", `{"username":"alice","password":"pw1"}`, "")
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "User created successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing password", `{"username":"alice"}`, "password is required"},
		{"missing both", `{}`, "username is required; password is required"},
		{"malformed json", `{"username":`, "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/register", tt.body, "")
			err := handler.Register(c)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Error() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, ve.Error())
			}
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/register", `{"username":"alice","password":"pw1"}`, "")
	if err := handler.Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if password != "pw1" {
				return "", domain.ErrInvalidCredentials
			}
			return "signed-token", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`, "")
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusOK || resp.AccessToken != "signed-token" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}

	c, _ = newContext(http.MethodPost, "/login", `{"username":"alice","password":"nope"}`, "")
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_PassesToken(t *testing.T) {
	var got string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, token string) error {
			got = token
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/logout", "", "u1")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got != "token-u1" {
		t.Fatalf("unexpected result: %d, token %q", rec.Code, got)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice", PasswordHash: "secret-hash", DailyCalorieGoal: 1800}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodGet, "/user_profile", "", "u1")
	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["daily_calorie_goal"] != float64(1800) {
		t.Fatalf("unexpected profile: %v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatal("password hash must never be serialised")
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	var gotUser, gotName string
	var gotGoal int
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, userID, username string, goal int) (*domain.User, error) {
			gotUser, gotName, gotGoal = userID, username, goal
			return &domain.User{ID: userID}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/update_profile", `{"username":"alice2","daily_calorie_goal":1800}`, "u1")
	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotUser != "u1" || gotName != "alice2" || gotGoal != 1800 {
		t.Fatalf("unexpected call: %d %s %s %d", rec.Code, gotUser, gotName, gotGoal)
	}
}

func TestAuthHandler_UpdateProfile_Validation(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	for _, body := range []string{
		`{"username":"alice2"}`,
		`{"username":"alice2","daily_calorie_goal":0}`,
		`{"daily_calorie_goal":1800}`,
	} {
		c, _ := newContext(http.MethodPost, "/update_profile", body, "u1")
		var ve *domain.ValidationError
		if err := handler.UpdateProfile(c); !errors.As(err, &ve) {
			t.Fatalf("body %s: expected ValidationError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Profile_RequiresIdentity(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodGet, "/user_profile", "", "")
	if err := handler.Profile(c); err == nil {
		t.Fatal("expected error without authenticated user")
	}
}
