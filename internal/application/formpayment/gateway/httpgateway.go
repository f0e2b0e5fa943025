package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/MV-Clouds/quickform-payments/internal/shared/constants"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
	"github.com/MV-Clouds/quickform-payments/internal/shared/utils/logutil"
)

const (
	// defaultRequestTimeout bounds one provider round trip.
	defaultRequestTimeout = 15 * time.Second
	// maxResponseSize caps provider response bodies (256KB).
	maxResponseSize = 256 << 10
)

// Provider error codes mapped onto GatewayError kinds.
const (
	providerCodeImmutable = "PLAN_FIELD_IMMUTABLE"
	providerCodeNotFound  = "RESOURCE_NOT_FOUND"
)

// HTTPGatewayConfig holds the connection settings for the provider endpoint.
type HTTPGatewayConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
}

// HTTPGateway talks to the provider over its action-oriented JSON RPC: every
// call is a POST with an "action" discriminator and action-specific fields.
type HTTPGateway struct {
	httpClient *http.Client
	config     HTTPGatewayConfig
	logger     logger.Interface
}

// NewHTTPGateway creates a provider gateway client.
func NewHTTPGateway(config HTTPGatewayConfig, log logger.Interface) *HTTPGateway {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPGateway{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		logger:     log,
	}
}

// Ensure HTTPGateway implements ProviderGateway
var _ ProviderGateway = (*HTTPGateway)(nil)

type rpcEnvelope struct {
	Action     string    `json:"action"`
	MerchantID string    `json:"merchantId"`
	PlanID     string    `json:"planId,omitempty"`
	PlanData   *PlanData `json:"planData,omitempty"`

	Description      *string               `json:"description,omitempty"`
	AdvancedSettings *AdvancedSettingsData `json:"advancedSettings,omitempty"`

	Name             string   `json:"name,omitempty"`
	Purpose          string   `json:"purpose,omitempty"`
	ButtonID         string   `json:"buttonId,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	SuggestedAmounts []string `json:"suggestedAmounts,omitempty"`
	AllowCustom      bool     `json:"allowCustom,omitempty"`
}

type rpcResponse struct {
	Success bool `json:"success"`
	Plan    *struct {
		ID        string `json:"id"`
		ProductID string `json:"productId"`
		Name      string `json:"name"`
		Status    string `json:"status"`
	} `json:"plan"`
	DonationPlan *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"donationPlan"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *HTTPGateway) CreateSubscriptionPlan(ctx context.Context, req CreatePlanRequest) (*CreatePlanResponse, error) {
	envelope := rpcEnvelope{
		Action:     ActionCreateSubscriptionPlan,
		MerchantID: req.MerchantID,
		PlanData:   &req.PlanData,
	}

	resp, err := g.call(ctx, envelope)
	if err != nil {
		return nil, err
	}
	if resp.Plan == nil {
		return nil, NewGatewayError(KindMalformedResponse, "",
			"create-subscription-plan response is missing the plan object", http.StatusOK)
	}

	return &CreatePlanResponse{
		PlanID:    resp.Plan.ID,
		ProductID: resp.Plan.ProductID,
		Name:      resp.Plan.Name,
		Status:    resp.Plan.Status,
	}, nil
}

func (g *HTTPGateway) UpdateSubscriptionPlan(ctx context.Context, req UpdatePlanRequest) (*UpdatePlanResponse, error) {
	envelope := rpcEnvelope{
		Action:           ActionUpdateSubscriptionPlan,
		MerchantID:       req.MerchantID,
		PlanID:           req.PlanID,
		Description:      &req.Description,
		AdvancedSettings: req.AdvancedSettings,
	}

	resp, err := g.call(ctx, envelope)
	if err != nil {
		return nil, err
	}
	if resp.Plan == nil {
		return nil, NewGatewayError(KindMalformedResponse, "",
			"update-subscription-plan response is missing the plan object", http.StatusOK)
	}

	return &UpdatePlanResponse{
		Name:   resp.Plan.Name,
		Status: resp.Plan.Status,
	}, nil
}

func (g *HTTPGateway) CreateDonationPlan(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error) {
	envelope := rpcEnvelope{
		Action:           ActionCreateDonationPlan,
		MerchantID:       req.MerchantID,
		Name:             req.Name,
		Purpose:          req.Purpose,
		ButtonID:         req.ButtonID,
		Currency:         req.Currency,
		SuggestedAmounts: req.SuggestedAmounts,
		AllowCustom:      req.AllowCustom,
	}

	resp, err := g.call(ctx, envelope)
	if err != nil {
		return nil, err
	}
	if resp.DonationPlan == nil {
		return nil, NewGatewayError(KindMalformedResponse, "",
			"create-donation-plan response is missing the donationPlan object", http.StatusOK)
	}

	return &CreateDonationResponse{
		DonationPlanID: resp.DonationPlan.ID,
		Status:         resp.DonationPlan.Status,
	}, nil
}

func (g *HTTPGateway) call(ctx context.Context, envelope rpcEnvelope) (*rpcResponse, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", envelope.Action, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", envelope.Action, err)
	}
	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if g.config.APIKey != "" {
		httpReq.Header.Set(constants.HeaderAuthorization, "Bearer "+g.config.APIKey)
	}

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			g.logger.Warnw("provider call timed out", "action", envelope.Action)
			return nil, NewGatewayError(KindTransient, "", "provider request timed out", 0)
		}
		return nil, NewGatewayError(KindTransient, "", fmt.Sprintf("provider unreachable: %v", err), 0)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, NewGatewayError(KindTransient, "", "failed to read provider response", httpResp.StatusCode)
	}

	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		g.logger.Errorw("unparseable provider response",
			"action", envelope.Action,
			"status", httpResp.StatusCode,
			"body", logutil.TruncateForLog(string(raw), 512),
		)
		return nil, NewGatewayError(KindMalformedResponse, "", "unparseable provider response", httpResp.StatusCode)
	}

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, g.asError(&resp, KindTransient, httpResp.StatusCode)
	}
	if httpResp.StatusCode >= http.StatusBadRequest || !resp.Success {
		return nil, g.asError(&resp, KindRejected, httpResp.StatusCode)
	}

	return &resp, nil
}

// asError maps a provider error envelope to a GatewayError, upgrading known
// provider codes to their specific kinds.
func (g *HTTPGateway) asError(resp *rpcResponse, fallback ErrorKind, status int) *GatewayError {
	code := ""
	message := "provider rejected the request"
	if resp.Error != nil {
		code = resp.Error.Code
		if resp.Error.Message != "" {
			message = resp.Error.Message
		}
	}

	kind := fallback
	switch code {
	case providerCodeImmutable:
		kind = KindImmutableViolation
	case providerCodeNotFound:
		kind = KindNotFound
	}

	return NewGatewayError(kind, code, message, status)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
