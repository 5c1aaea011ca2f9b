package models

// ComplaintItem is a complaint as it appears on the wire. Every field may be
// missing; NormalizeComplaint turns it into a Complaint.
type ComplaintItem struct {
	ID          string       `json:"_id"`
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Photos      []string     `json:"photos,omitempty"`
	Status      *string      `json:"status,omitempty"`
	CreatedAt   *string      `json:"createdAt,omitempty"`
	User        *UserSummary `json:"user,omitempty"`
}

// LeaderboardItem is a leaderboard entry as it appears on the wire
type LeaderboardItem struct {
	ID              string `json:"_id,omitempty"`
	Name            string `json:"name"`
	TotalResolved   int    `json:"totalResolved"`
	TotalComplaints *int   `json:"totalComplaints,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
// Government officials log in with their government ID in the email field.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID string `json:"userId,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// RegisterGovernmentRequest is the body of POST /api/auth/register/government
type RegisterGovernmentRequest struct {
	GovernmentID string `json:"governmentId" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Password     string `json:"password" validate:"required,min=6"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// PhotoUpload is one photo attached to a complaint submission
type PhotoUpload struct {
	FileName string
	Data     []byte
}

// SubmitComplaintRequest is sent as multipart/form-data to POST /api/citizen/complaints
type SubmitComplaintRequest struct {
	Title       string        `validate:"required"`
	Category    string        `validate:"required"`
	Description string        `validate:"required,min=10"`
	Location    string        `validate:"required"`
	Photos      []PhotoUpload `validate:"max=10"`
}

// UpdateStatusRequest is the body of PATCH /api/government/complaints/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON error body returned by the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
