package request

type Register struct {
	Username        string `validate:"required,max=150"                json:"username"`
	Email           string `validate:"required,email"                  json:"email"`
	Password        string `validate:"required,password"               json:"password"`
	PasswordConfirm string `validate:"required,eqfield=Password"       json:"password_confirm"`
	FirstName       string `validate:"max=150"                         json:"first_name"`
	LastName        string `validate:"max=150"                         json:"last_name"`
}

type Login struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required" json:"password"`
}

type RefreshToken struct {
	Refresh string `validate:"required" json:"refresh"`
}

type UpdateProfile struct {
	FirstName *string `                          json:"first_name"`
	LastName  *string `                          json:"last_name"`
	Email     *string `validate:"omitempty,email" json:"email"`
}

type ChangePassword struct {
	OldPassword        string `validate:"required"                     json:"old_password"`
	NewPassword        string `validate:"required,password"            json:"new_password"`
	NewPasswordConfirm string `validate:"required,eqfield=NewPassword" json:"new_password_confirm"`
}
