package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/signit/go-signit-server/services"
	"github.com/signit/go-signit-server/types"
)

type EnvelopeApi struct {
	envelopeService *services.EnvelopeService
	validate        *validator.Validate
}

func NewEnvelopeApi(envelopeService *services.EnvelopeService) *EnvelopeApi {
	return &EnvelopeApi{
		envelopeService: envelopeService,
		validate:        validator.New(),
	}
}

// Create embedded envelope
// @Summary Create a two-signer envelope and return the embedded signing URL
// @Description Submits the agreement to the e-signature provider and returns the first signers in-app signing URL
// @Tags Envelope
// @Param envelope body types.InputCreateEnvelope true "both signing parties"
// @Success 200 {object} types.OutputSigningURL
// @Failure 400 {object} api.ApiError "Invalid or missing input parameters"
// @Failure 401 {object} api.ApiError "Missing or invalid session"
// @Failure 502 {object} api.ApiError "E-signature provider rejected the request"
// @Accept json
// @Produce json
// @Router /envelope/ [post]
func (ea *EnvelopeApi) CreateEmbeddedEnvelope(c *gin.Context) {
	var input types.InputCreateEnvelope
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid request body")
		return
	}
	// validation fails closed: no provider call is made for malformed input
	if vErr := ea.validate.Struct(&input); vErr != nil {
		ApiErrorf(c, http.StatusBadRequest, ValidatorErrorToUser(vErr.(validator.ValidationErrors)))
		return
	}
	requesterID := c.GetString("userID")
	if requesterID == "" {
		ApiErrorf(c, http.StatusUnauthorized, "missing session")
		return
	}

	first := types.SignerParty{Name: input.FirstParty.Name, Email: input.FirstParty.Email}
	second := types.SignerParty{Name: input.SecondParty.Name, Email: input.SecondParty.Email}

	signingURL, err := ea.envelopeService.CreateEmbeddedEnvelope(c.Request.Context(), requesterID, first, second)
	if err != nil {
		var envelopeErr *types.EnvelopeError
		var authErr *types.AuthError
		if errors.As(err, &envelopeErr) {
			ApiErrorf(c, http.StatusBadGateway, "signature provider rejected the request: %s", envelopeErr.Message)
			return
		}
		if errors.As(err, &authErr) {
			ApiErrorf(c, http.StatusBadGateway, "failed to authorize with the signature provider")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to create envelope")
		return
	}
	c.JSON(http.StatusOK, types.OutputSigningURL{SigningURL: signingURL})
}
