package user

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	PhotoURL string `json:"photoURL"`
}
