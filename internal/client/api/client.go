package api

import (
	"context"
	"io"
)

const (
	PathCurrentUser  = "/api/user/currentuser"
	PathLogin        = "/api/auth/login"
	PathSignup       = "/api/auth/signup"
	PathGoogleSignup = "/api/auth/googlesignup"
	PathLogout       = "/api/auth/logout"
	PathProgress     = "/api/progress"
	PathCertificate  = "/api/certificate"
	PathQuiz         = "/api/quiz/generate"
	PathHealth       = "/api/health"
)

// Client is the auth/user API. Payloads are decoded JSON of unknown shape;
// see package identity for how they are interpreted.
type Client interface {
	CurrentUser(ctx context.Context) (any, error)
	Login(ctx context.Context, req LoginRequest) (any, error)
	Signup(ctx context.Context, req SignupRequest) (any, error)
	GoogleSignup(ctx context.Context, req GoogleSignupRequest) (any, error)
	LogoutPost(ctx context.Context) error
	LogoutGet(ctx context.Context) error
	Ping(ctx context.Context) error
}

// LearningClient covers the course endpoints the CLI talks to.
type LearningClient interface {
	SaveProgress(ctx context.Context, p Progress) error
	GetProgress(ctx context.Context, userID, courseID string) (*Progress, error)
	Certificate(ctx context.Context, req CertificateRequest, w io.Writer) (int64, error)
	GenerateQuiz(ctx context.Context, req QuizRequest) (any, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Class    string `json:"class"`
	Branch   string `json:"branch"`
	Subject  string `json:"subject"`
}

// GoogleSignupRequest carries the profile returned by the identity-provider popup.
type GoogleSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl"`
	Role     string `json:"role,omitempty"`
	Class    string `json:"class,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Subject  string `json:"subject,omitempty"`
}

// Progress is the video-progress record for one user and course.
type Progress struct {
	UserID    string  `json:"userId"`
	CourseID  string  `json:"courseId"`
	LectureID string  `json:"lectureId,omitempty"`
	Position  float64 `json:"position"`
	Completed bool    `json:"completed"`
}

type CertificateRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	Name     string `json:"name,omitempty"`
}

type QuizRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
}
