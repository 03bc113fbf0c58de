package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/signit/go-signit-server/api/interceptors"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/services"
	"github.com/signit/go-signit-server/types"
)

type UserAccountApi struct {
	userService *services.UserService
	validate    *validator.Validate
}

func NewUserAccountApi(userService *services.UserService) *UserAccountApi {
	return &UserAccountApi{
		userService: userService,
		validate:    validator.New(),
	}
}

// Register user method
// @Summary Register user
// @Description Creates an account in the host user directory
// @Tags User Account
// @Param registration body types.InputUserCredentials true "registration input"
// @Success 200 {object} types.OutputUser
// @Failure 400 {object} api.ApiError "Invalid or missing input parameters"
// @Failure 422 {object} api.ApiError "Username already exists"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Accept json
// @Produce json
// @Router /user/ [post]
func (ua *UserAccountApi) Register(c *gin.Context) {
	var input types.InputUserCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := ua.validate.Struct(&input); vErr != nil {
		ApiErrorf(c, http.StatusBadRequest, ValidatorErrorToUser(vErr.(validator.ValidationErrors)))
		return
	}
	user, err := ua.userService.CreateUser(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if err == types.ErrConflict {
			ApiErrorf(c, http.StatusUnprocessableEntity, "username already exists.")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	c.JSON(http.StatusOK, types.OutputUser{ID: user.ID, Username: user.Username})
}

// Login method
// @Summary Login with username and password
// @Description Verifies the credentials and sets the session cookie
// @Tags User Account
// @Param login body types.InputUserCredentials true "login input"
// @Success 200 {object} types.OutputUser
// @Failure 400 {object} api.ApiError "Invalid or missing input parameters"
// @Failure 401 {object} api.ApiError "Invalid username or password"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Accept json
// @Produce json
// @Router /user/login [post]
func (ua *UserAccountApi) Login(c *gin.Context) {
	var input types.InputUserCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := ua.validate.Struct(&input); vErr != nil {
		ApiErrorf(c, http.StatusBadRequest, ValidatorErrorToUser(vErr.(validator.ValidationErrors)))
		return
	}
	user, err := ua.userService.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		// no cookie on failure; an identity-less session is rejected too
		if err == types.ErrInvalidCredentials {
			ApiErrorf(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to login")
		return
	}
	token, tErr := interceptors.GenerateSessionToken(global.PrivateKey, user)
	if tErr != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to create session")
		return
	}
	maxAge := global.Conf.Session.DurationHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(global.Conf.Session.CookieName, token, maxAge, "/", "", global.Conf.Session.Secure, true)
	c.JSON(http.StatusOK, types.OutputUser{ID: user.ID, Username: user.Username})
}
