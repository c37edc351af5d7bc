package contracts

import "github.com/Toston-App/lake-sub000/internal/domain/user"

type UserCreateRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
}

type UserResponse struct {
	Message string     `json:"message,omitempty"`
	User    *user.User `json:"user"`
}
