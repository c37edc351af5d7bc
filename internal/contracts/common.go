package contracts

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type BulkDeleteRequest struct {
	Ids []string `json:"ids" binding:"required,min=1,max=500,dive,required"`
}
