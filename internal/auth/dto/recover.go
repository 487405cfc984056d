package dto

type RecoverInput struct {
	Email     string `json:"email" form:"email"`
	CSRFToken string `json:"_csrf" form:"_csrf"`
}

type ResetInput struct {
	Token           string `json:"token" form:"token"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	CSRFToken       string `json:"_csrf" form:"_csrf"`
}
