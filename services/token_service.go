package services

import (
	"context"
	"time"

	"github.com/go-kit/log/level"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/metrics"
	"github.com/signit/go-signit-server/types"
	"github.com/signit/go-signit-server/util"
)

const accessTokenCacheKey = "access_token"

// AccessTokenService obtains bearer tokens for the e-signature
// provider via the JWT bearer grant and caches them. The cache TTL is
// configured shorter than the tokens real validity, so an entry is
// never served past expiry. Concurrent misses may each perform their
// own exchange and overwrite each other; the duplicate fetch is benign.
type AccessTokenService struct {
	cache       Cache
	restyClient *resty.Client
}

func NewAccessTokenService(cache Cache, mock bool) *AccessTokenService {
	if cache == nil {
		panic("cache cannot be nil")
	}
	client := resty.New().
		SetTimeout(time.Second * 10).
		SetHeader("Accept", "application/json")
	if mock {
		httpmock.ActivateNonDefault(client.GetClient())
	}
	return &AccessTokenService{
		cache:       cache,
		restyClient: client,
	}
}

// GetAccessToken returns a valid bearer token, exchanging a freshly
// signed grant with the providers auth server on a cache miss
func (ts *AccessTokenService) GetAccessToken(ctx context.Context) (string, error) {
	token, cErr := ts.cache.Get(ctx, accessTokenCacheKey)
	if cErr == nil && token != "" {
		return token, nil
	}
	if cErr != nil && cErr != types.ErrNotFound {
		level.Error(global.Logger).Log("CacheError", "AccessTokenService.Get", cErr.Error())
	}

	assertion, aErr := ts.signGrantAssertion()
	if aErr != nil {
		return "", aErr
	}

	var tokenResponse types.OAuthTokenResponse
	var oauthError types.OAuthErrorResponse
	response, rErr := ts.restyClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type": "urn:ietf:params:oauth:grant-type:jwt-bearer",
			"assertion":  assertion,
		}).
		SetResult(&tokenResponse).
		SetError(&oauthError).
		Post("https://" + global.Conf.Esign.AuthServer + "/oauth/token")
	if rErr != nil {
		return "", rErr
	}
	if response.IsError() {
		return "", &types.AuthError{
			StatusCode:  response.StatusCode(),
			Code:        oauthError.Code,
			Description: oauthError.Description,
		}
	}
	if tokenResponse.AccessToken == "" {
		return "", &types.AuthError{StatusCode: response.StatusCode(), Code: "empty_token"}
	}
	metrics.TokenExchangesMetricsCount.Inc()

	ttl := time.Duration(global.Conf.Esign.TokenCacheSeconds) * time.Second
	if sErr := ts.cache.Set(ctx, accessTokenCacheKey, tokenResponse.AccessToken, ttl); sErr != nil {
		// a failed cache write only costs an extra exchange on the next call
		level.Error(global.Logger).Log("CacheError", "AccessTokenService.Set", sErr.Error())
	}
	return tokenResponse.AccessToken, nil
}

// signGrantAssertion builds the RS256 signed JWT the auth server
// exchanges for an access token (impersonation consent is granted out
// of band, to the configured integration key and user)
func (ts *AccessTokenService) signGrantAssertion() (string, error) {
	privateKey, kErr := util.LoadRSAPrivateKey(global.Conf.Esign.PrivateKeyPath)
	if kErr != nil {
		return "", kErr
	}
	now := time.Now().UTC()
	grant, bErr := jwt.NewBuilder().
		Issuer(global.Conf.Esign.IntegrationKey).
		Subject(global.Conf.Esign.UserID).
		Audience([]string{global.Conf.Esign.AuthServer}).
		IssuedAt(now).
		Expiration(now.Add(time.Duration(global.Conf.Esign.TokenExpirySeconds) * time.Second)).
		JwtID(uuid.NewString()).
		Claim("scope", "signature impersonation").
		Build()
	if bErr != nil {
		return "", bErr
	}
	signed, sErr := jwt.Sign(grant, jwt.WithKey(jwa.RS256, privateKey))
	if sErr != nil {
		return "", sErr
	}
	return string(signed), nil
}
