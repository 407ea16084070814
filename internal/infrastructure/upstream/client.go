// Package upstream provides the HTTP client for the metrics backend that
// proxies Microsoft Graph on this service's behalf.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// maxPayloadBytes caps a single metric payload read.
const maxPayloadBytes = 8 << 20

// endpoint paths by metric type, relative to the backend base URL. All take a
// tenant_id query parameter.
var endpoints = map[constants.MetricType]string{
	constants.MetricSecureScores:       "/v1/metrics/secure-scores",
	constants.MetricManagedDevices:     "/v1/metrics/managed-devices",
	constants.MetricSignInPolicies:     "/v1/metrics/sign-in-policies",
	constants.MetricTrustedLocations:   "/v1/metrics/trusted-locations",
	constants.MetricDirectoryRoles:     "/v1/metrics/directory-roles",
	constants.MetricMFAMethods:         "/v1/metrics/mfa-methods",
	constants.MetricCompliancePolicies: "/v1/metrics/compliance-policies",
}

// Client fetches metric payloads from the backend. Payloads are validated for
// shape before they are returned, so bad data never reaches the cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a metrics backend client from configuration.
func NewClient(cfg *config.UpstreamConfig, log logger.Logger) *Client {
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = constants.DefaultUpstreamTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithComponent("upstream"),
	}
}

// FetchRaw retrieves the raw JSON payload for (tenantID, metricType) and
// validates that it decodes into the expected shape.
func (c *Client) FetchRaw(ctx context.Context, tenantID string, metricType constants.MetricType) ([]byte, error) {
	path, ok := endpoints[metricType]
	if !ok {
		return nil, errors.ErrInvalidRequest(fmt.Sprintf("unknown metric type: %s", metricType))
	}

	query := url.Values{"tenant_id": {tenantID}}
	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.ErrInternal("build upstream request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ErrUpstreamUnreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, errors.ErrUpstreamStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, errors.ErrUpstreamUnreachable(err)
	}

	if err := validatePayload(metricType, body); err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "fetched metric payload",
		logger.String("tenant_id", tenantID),
		logger.String("metric_type", string(metricType)),
		logger.Int("bytes", len(body)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

// validatePayload decodes into the typed shape for the metric, rejecting
// payloads that do not parse. The raw bytes are what gets cached, so shape
// errors must be caught here.
func validatePayload(metricType constants.MetricType, body []byte) error {
	var err error
	switch metricType {
	case constants.MetricSecureScores:
		err = decodeList[models.SecureScoreEntry](body)
	case constants.MetricManagedDevices:
		err = decodeList[models.ManagedDevice](body)
	case constants.MetricSignInPolicies, constants.MetricTrustedLocations:
		err = decodeList[models.ConditionalAccessPolicy](body)
	case constants.MetricDirectoryRoles:
		err = decodeList[models.DirectoryRoleMember](body)
	case constants.MetricMFAMethods:
		err = decodeList[models.MFAMethodReport](body)
	case constants.MetricCompliancePolicies:
		err = decodeList[models.CompliancePolicy](body)
	default:
		err = fmt.Errorf("no decoder for metric type %s", metricType)
	}
	if err != nil {
		return errors.ErrBadPayload(err)
	}
	return nil
}

func decodeList[T any](body []byte) error {
	var out []T
	return json.Unmarshal(body, &out)
}

// SecureScores fetches and decodes the secure score history.
func (c *Client) SecureScores(ctx context.Context, tenantID string) ([]models.SecureScoreEntry, error) {
	return fetchTyped[models.SecureScoreEntry](ctx, c, tenantID, constants.MetricSecureScores)
}

// ManagedDevices fetches and decodes the managed device inventory.
func (c *Client) ManagedDevices(ctx context.Context, tenantID string) ([]models.ManagedDevice, error) {
	return fetchTyped[models.ManagedDevice](ctx, c, tenantID, constants.MetricManagedDevices)
}

// SignInPolicies fetches and decodes sign-in risk policies.
func (c *Client) SignInPolicies(ctx context.Context, tenantID string) ([]models.ConditionalAccessPolicy, error) {
	return fetchTyped[models.ConditionalAccessPolicy](ctx, c, tenantID, constants.MetricSignInPolicies)
}

// TrustedLocations fetches and decodes trusted named locations.
func (c *Client) TrustedLocations(ctx context.Context, tenantID string) ([]models.ConditionalAccessPolicy, error) {
	return fetchTyped[models.ConditionalAccessPolicy](ctx, c, tenantID, constants.MetricTrustedLocations)
}

// DirectoryRoles fetches and decodes privileged role membership.
func (c *Client) DirectoryRoles(ctx context.Context, tenantID string) ([]models.DirectoryRoleMember, error) {
	return fetchTyped[models.DirectoryRoleMember](ctx, c, tenantID, constants.MetricDirectoryRoles)
}

// MFAMethods fetches and decodes the MFA registration report.
func (c *Client) MFAMethods(ctx context.Context, tenantID string) ([]models.MFAMethodReport, error) {
	return fetchTyped[models.MFAMethodReport](ctx, c, tenantID, constants.MetricMFAMethods)
}

// CompliancePolicies fetches and decodes device compliance policies.
func (c *Client) CompliancePolicies(ctx context.Context, tenantID string) ([]models.CompliancePolicy, error) {
	return fetchTyped[models.CompliancePolicy](ctx, c, tenantID, constants.MetricCompliancePolicies)
}

func fetchTyped[T any](ctx context.Context, c *Client, tenantID string, metricType constants.MetricType) ([]T, error) {
	body, err := c.FetchRaw(ctx, tenantID, metricType)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.ErrBadPayload(err)
	}
	return out, nil
}
