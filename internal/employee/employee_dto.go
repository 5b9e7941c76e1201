package employee

type CreateEmployeeRequest struct {
	Name         string         `json:"name" binding:"required"`
	Email        string         `json:"email" binding:"required,email"`
	PhoneNumber  string         `json:"phone_number" binding:"required"`
	CustomFields map[string]any `json:"custom_fields"`
}

// UpdateEmployeeRequest uses pointers so an omitted field means "no change".
// Ownership is not part of the payload; unknown keys (e.g. "user") are ignored
// by the JSON decoder.
type UpdateEmployeeRequest struct {
	Name         *string        `json:"name"`
	Email        *string        `json:"email" binding:"omitempty,email"`
	PhoneNumber  *string        `json:"phone_number"`
	CustomFields map[string]any `json:"custom_fields"`
}

type EmployeeResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PhoneNumber  string         `json:"phone_number"`
	CustomFields map[string]any `json:"custom_fields"`
}
