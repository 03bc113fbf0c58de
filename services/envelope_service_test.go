package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/signit/go-signit-server/types"
	"github.com/signit/go-signit-server/util"
	"github.com/stretchr/testify/assert"
)

const (
	createEnvelopeURL = "https://demo.test.example.net/restapi/v2.1/accounts/acct-1/envelopes"
	recipientViewURL  = "https://demo.test.example.net/restapi/v2.1/accounts/acct-1/envelopes/env-123/views/recipient"
)

func newMockedEnvelopeService(t *testing.T) *EnvelopeService {
	t.Helper()
	setupEsignConf(t)
	cache := newFakeCache()
	cache.Set(context.Background(), accessTokenCacheKey, "tok-test", time.Hour)
	tokenService := NewAccessTokenService(cache, true)
	return NewEnvelopeService(tokenService, true)
}

func TestCreateEmbeddedEnvelope(t *testing.T) {
	envelopeService := newMockedEnvelopeService(t)
	defer httpmock.DeactivateAndReset()

	var calls []string
	var capturedDefinition types.EnvelopeDefinition
	var capturedView types.RecipientViewRequest

	httpmock.RegisterResponder("POST", createEnvelopeURL,
		func(req *http.Request) (*http.Response, error) {
			calls = append(calls, "createEnvelope")
			if dErr := json.NewDecoder(req.Body).Decode(&capturedDefinition); dErr != nil {
				t.Fatal(dErr)
			}
			return httpmock.NewJsonResponse(201, types.EnvelopeSummary{EnvelopeID: "env-123", Status: "sent"})
		})
	httpmock.RegisterResponder("POST", recipientViewURL,
		func(req *http.Request) (*http.Response, error) {
			calls = append(calls, "createRecipientView")
			if dErr := json.NewDecoder(req.Body).Decode(&capturedView); dErr != nil {
				t.Fatal(dErr)
			}
			return httpmock.NewJsonResponse(201, types.RecipientViewURL{URL: "https://demo.test.example.net/signing/start?view=1"})
		})

	first := types.SignerParty{Name: "Alice Prima", Email: "alice@example.com"}
	second := types.SignerParty{Name: "Bob Secundo", Email: "bob@example.com"}

	signingURL, err := envelopeService.CreateEmbeddedEnvelope(context.Background(), "req-42", first, second)
	if err != nil {
		t.Fatal(err)
	}

	// one envelope call, then one view call
	assert.Equal(t, []string{"createEnvelope", "createRecipientView"}, calls)

	parsed, pErr := url.Parse(signingURL)
	if pErr != nil {
		t.Fatal(pErr)
	}
	assert.Equal(t, "https", parsed.Scheme)

	// envelope is dispatched immediately with both parties in routing order
	assert.Equal(t, "sent", capturedDefinition.Status)
	assert.Equal(t, "Please sign this document", capturedDefinition.EmailSubject)
	if len(capturedDefinition.Recipients.Signers) != 2 {
		t.Fatalf("expected 2 signers, got %d", len(capturedDefinition.Recipients.Signers))
	}
	firstSigner := capturedDefinition.Recipients.Signers[0]
	secondSigner := capturedDefinition.Recipients.Signers[1]
	assert.Equal(t, "1", firstSigner.RecipientID)
	assert.Equal(t, "1", firstSigner.RoutingOrder)
	assert.Equal(t, "req-42", firstSigner.ClientUserID)
	assert.Equal(t, util.AnchorFirstSignature, firstSigner.Tabs.SignHereTabs[0].AnchorString)
	assert.Equal(t, "2", secondSigner.RecipientID)
	assert.Equal(t, "2", secondSigner.RoutingOrder)
	assert.Empty(t, secondSigner.ClientUserID)
	assert.Equal(t, util.AnchorSecondSignature, secondSigner.Tabs.SignHereTabs[0].AnchorString)

	if len(capturedDefinition.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(capturedDefinition.Documents))
	}
	assert.Equal(t, util.AgreementDocumentBase64(), capturedDefinition.Documents[0].DocumentBase64)

	// the requesters id is echoed into the embedded view request
	assert.Equal(t, "req-42", capturedView.ClientUserID)
	assert.Equal(t, "none", capturedView.AuthenticationMethod)
	assert.Equal(t, "1", capturedView.RecipientID)
	assert.Equal(t, "Alice Prima", capturedView.UserName)
	assert.Equal(t, "alice@example.com", capturedView.Email)
	assert.Equal(t, "http://localhost:5173/envelope/create/success", capturedView.ReturnURL)
}

func TestCreateEmbeddedEnvelopeProviderRejection(t *testing.T) {
	envelopeService := newMockedEnvelopeService(t)
	defer httpmock.DeactivateAndReset()

	responder, _ := httpmock.NewJsonResponder(400, types.EsignAPIError{
		ErrorCode: "INVALID_EMAIL_ADDRESS_FOR_RECIPIENT",
		Message:   "The email address for the recipient is invalid.",
	})
	httpmock.RegisterResponder("POST", createEnvelopeURL, responder)

	first := types.SignerParty{Name: "Alice Prima", Email: "alice@example.com"}
	second := types.SignerParty{Name: "Bob Secundo", Email: "bob@example.com"}

	_, err := envelopeService.CreateEmbeddedEnvelope(context.Background(), "req-42", first, second)
	if err == nil {
		t.Fatal("expected envelope creation to fail")
	}
	envelopeErr, ok := err.(*types.EnvelopeError)
	if !ok {
		t.Fatalf("expected *types.EnvelopeError, got %T", err)
	}
	assert.Equal(t, 400, envelopeErr.StatusCode)
	assert.Equal(t, "INVALID_EMAIL_ADDRESS_FOR_RECIPIENT", envelopeErr.Code)

	// no view request is attempted after a failed envelope creation
	callInfo := httpmock.GetCallCountInfo()
	assert.Equal(t, 0, callInfo["POST "+recipientViewURL])
}
