package dto

type LoginInput struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	CSRFToken string `json:"_csrf" form:"_csrf"`
	IPAddress string `json:"-" form:"-"`
}
