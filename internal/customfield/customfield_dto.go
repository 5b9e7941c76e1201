package customfield

type CreateCustomFieldRequest struct {
	FieldName string `json:"field_name" binding:"required"`
	FieldType string `json:"field_type" binding:"required"`
}

type CustomFieldResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	FieldName string `json:"field_name"`
	FieldType string `json:"field_type"`
}
