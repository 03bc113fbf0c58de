package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/metrics"
	"github.com/signit/go-signit-server/types"
	"github.com/signit/go-signit-server/util"
)

// EnvelopeService submits two-signer envelopes to the e-signature
// provider and requests the embedded signing view for the first
// signer. The provider owns the envelope lifecycle once created; no
// cleanup is attempted on partial failure.
type EnvelopeService struct {
	tokenService *AccessTokenService
	restyClient  *resty.Client
}

func NewEnvelopeService(tokenService *AccessTokenService, mock bool) *EnvelopeService {
	if tokenService == nil {
		panic("tokenService cannot be nil")
	}
	accountURL := fmt.Sprintf("%s/v2.1/accounts/%s",
		strings.TrimSuffix(global.Conf.Esign.BasePath, "/"), global.Conf.Esign.AccountID)
	client := resty.New().
		SetBaseURL(accountURL).
		SetTimeout(time.Second * 30).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if mock {
		httpmock.ActivateNonDefault(client.GetClient())
	}
	return &EnvelopeService{
		tokenService: tokenService,
		restyClient:  client,
	}
}

// CreateEmbeddedEnvelope creates a sent envelope for both parties and
// returns the embedded signing URL for the first party. requesterID is
// the authenticated callers user id; it doubles as the clientUserId
// identifying the embedded signer.
func (es *EnvelopeService) CreateEmbeddedEnvelope(ctx context.Context, requesterID string, first, second types.SignerParty) (string, error) {
	accessToken, tErr := es.tokenService.GetAccessToken(ctx)
	if tErr != nil {
		return "", tErr
	}

	definition := buildEnvelopeDefinition(requesterID, first, second)

	var summary types.EnvelopeSummary
	var apiError types.EsignAPIError
	response, rErr := es.restyClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(definition).
		SetResult(&summary).
		SetError(&apiError).
		Post("/envelopes")
	if rErr != nil {
		return "", rErr
	}
	if response.IsError() {
		level.Error(global.Logger).Log("EnvelopeService", "create envelope rejected", apiError.ErrorCode, apiError.Message)
		return "", &types.EnvelopeError{StatusCode: response.StatusCode(), Code: apiError.ErrorCode, Message: apiError.Message}
	}
	if summary.EnvelopeID == "" {
		return "", &types.EnvelopeError{StatusCode: response.StatusCode(), Code: "missing_envelope_id", Message: "provider returned no envelope id"}
	}
	metrics.EnvelopesCreatedMetricsCount.Inc()

	viewRequest := types.RecipientViewRequest{
		AuthenticationMethod: "none",
		ClientUserID:         requesterID,
		RecipientID:          "1",
		ReturnURL:            global.Conf.Esign.ReturnURL,
		UserName:             first.Name,
		Email:                first.Email,
	}
	var view types.RecipientViewURL
	viewResponse, vErr := es.restyClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(viewRequest).
		SetResult(&view).
		SetError(&apiError).
		Post(fmt.Sprintf("/envelopes/%s/views/recipient", summary.EnvelopeID))
	if vErr != nil {
		return "", vErr
	}
	if viewResponse.IsError() {
		level.Error(global.Logger).Log("EnvelopeService", "recipient view rejected", apiError.ErrorCode, apiError.Message)
		return "", &types.EnvelopeError{StatusCode: viewResponse.StatusCode(), Code: apiError.ErrorCode, Message: apiError.Message}
	}
	if view.URL == "" {
		return "", &types.EnvelopeError{StatusCode: viewResponse.StatusCode(), Code: "missing_view_url", Message: "provider returned no signing url"}
	}
	metrics.RecipientViewsCreatedMetricsCount.Inc()

	return view.URL, nil
}

// buildEnvelopeDefinition bundles the agreement document with both
// signers. The first signer carries a clientUserId (embedded, signs
// in-app); the second completes via the provider hosted email flow.
// Routing order guarantees the first signer acts before the second.
func buildEnvelopeDefinition(requesterID string, first, second types.SignerParty) *types.EnvelopeDefinition {
	document := types.EnvelopeDocument{
		DocumentBase64: util.AgreementDocumentBase64(),
		Name:           "Agreement",
		FileExtension:  "html",
		DocumentID:     "1",
	}

	firstSigner := types.EnvelopeSigner{
		Email:        first.Email,
		Name:         first.Name,
		RecipientID:  "1",
		RoutingOrder: "1",
		ClientUserID: requesterID,
		Tabs: &types.Tabs{
			SignHereTabs: []types.SignHereTab{
				{
					AnchorString:  util.AnchorFirstSignature,
					AnchorUnits:   "pixels",
					AnchorXOffset: "0",
					AnchorYOffset: "0",
				},
			},
			TextTabs: []types.TextTab{
				{
					AnchorString:  util.AnchorFirstFullName,
					AnchorUnits:   "pixels",
					AnchorXOffset: "0",
					AnchorYOffset: "-2",
					TabLabel:      "Full Name",
				},
				{
					AnchorString:  util.AnchorFirstDate,
					AnchorUnits:   "pixels",
					AnchorXOffset: "0",
					AnchorYOffset: "-2",
					TabLabel:      "Date",
				},
			},
		},
	}

	secondSigner := types.EnvelopeSigner{
		Email:        second.Email,
		Name:         second.Name,
		RecipientID:  "2",
		RoutingOrder: "2",
		Tabs: &types.Tabs{
			SignHereTabs: []types.SignHereTab{
				{
					AnchorString:  util.AnchorSecondSignature,
					AnchorUnits:   "pixels",
					AnchorXOffset: "0",
					AnchorYOffset: "0",
				},
			},
			TextTabs: []types.TextTab{
				{
					AnchorString:  util.AnchorSecondFullName,
					AnchorUnits:   "pixels",
					AnchorXOffset: "0",
					AnchorYOffset: "-2",
					TabLabel:      "Full Name - Second signer",
				},
				{
					AnchorString:  util.AnchorSecondDate,
					AnchorUnits:   "pixels",
					AnchorXOffset: "0",
					AnchorYOffset: "-2",
					TabLabel:      "Date - Second signer",
				},
			},
		},
	}

	return &types.EnvelopeDefinition{
		EmailSubject: global.Conf.Esign.EmailSubject,
		Documents:    []types.EnvelopeDocument{document},
		Recipients:   types.EnvelopeRecipients{Signers: []types.EnvelopeSigner{firstSigner, secondSigner}},
		Status:       "sent",
	}
}
