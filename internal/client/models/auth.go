package models

// AuthResponse is returned by the password and face login endpoints.
// A successful response always carries a non-empty AccessToken; User is
// optional and, when absent, must be fetched separately via /auth/me.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// FaceEnrollResponse is returned by /auth/face/enroll.
// QualityScore is a backend-computed 0–100 suitability metric,
// for display only.
type FaceEnrollResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	QualityScore float64 `json:"quality_score"`
	FaceEnrolled bool    `json:"face_enrolled"`
}

// FaceTestResponse is returned by /auth/face/test.
type FaceTestResponse struct {
	Match      bool    `json:"match"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
	User       *User   `json:"user,omitempty"`
}
