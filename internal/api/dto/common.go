package dto

// SuccessResponse is the envelope shared by every successful portal response
type SuccessResponse struct {
	Success bool `json:"success"`
}

func ok() SuccessResponse {
	return SuccessResponse{Success: true}
}
