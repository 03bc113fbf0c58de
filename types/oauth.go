package types

// OAuthTokenResponse is the providers answer to a successful JWT
// bearer grant exchange
type OAuthTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// OAuthErrorResponse is the providers answer to a rejected grant
type OAuthErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}
