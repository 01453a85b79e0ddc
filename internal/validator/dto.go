package validator

// RegisterRequest is the public registration payload. Role is optional and
// defaults to Student; Admin is rejected at the service layer.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=128"`
	Role     string `json:"role" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial update; omitted fields stay untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=4,max=128"`
}

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type CreateModuleRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required"`
	Subject string `json:"subject" validate:"omitempty,max=100"`
}

// ProgressUpdateRequest needs either a module id or a free-text topic; the
// service enforces that at least one is present.
type ProgressUpdateRequest struct {
	ModuleID string  `json:"module_id" validate:"omitempty,max=255"`
	Topic    string  `json:"topic" validate:"omitempty,max=200"`
	Status   string  `json:"status" validate:"omitempty,max=50"`
	Score    float64 `json:"score" validate:"min=0,max=100"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type GenerateQuizRequest struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
}

type CreateQuizRequest struct {
	Topic string `json:"topic" validate:"required,max=200"`
}
