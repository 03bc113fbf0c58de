package types

type OutputUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type OutputSigningURL struct {
	SigningURL string `json:"signing_url"`
}
