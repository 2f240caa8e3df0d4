package domain

// ContactSubmission carries one contact-form message. Privacy is the data
// processing consent checkbox; Captcha is the human confirmation checkbox.
// Both must be affirmatively set.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Privacy bool   `json:"privacy"`
	Captcha bool   `json:"captcha"`
}

type ContactResult struct {
	Success bool      `json:"success"`
	Error   ErrorKind `json:"error,omitempty"`
}
