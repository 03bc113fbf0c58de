package types

// for register and login
type InputUserCredentials struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// one party to the agreement
type InputSigner struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// for envelope creation
type InputCreateEnvelope struct {
	FirstParty  *InputSigner `json:"first_party" validate:"required"`
	SecondParty *InputSigner `json:"second_party" validate:"required"`
}
