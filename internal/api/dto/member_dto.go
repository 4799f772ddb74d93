package dto

import "time"

// InviteMemberRequest is the invite draft payload.
type InviteMemberRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	JobTitle  string `json:"job_title"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfileRequest is the edit-in-place buffer payload.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
	Alias    string `json:"alias"`
}

// ChangeRoleRequest payload.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeAvatarRequest carries either a URL (preset or external) or an
// uploaded image. Data is base64 in the JSON payload.
type ChangeAvatarRequest struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// RemoveMemberRequest presents the confirmation token.
type RemoveMemberRequest struct {
	ConfirmToken string `json:"confirm_token"`
}

// MemberSummary is the wire view of a team member.
type MemberSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Alias     string    `json:"alias"`
	JobTitle  string    `json:"job_title,omitempty"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
