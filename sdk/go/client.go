// Package mapcheck provides a Go client SDK for the mapping validation
// service API
package mapcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client represents the mapping validation service client
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	version    string
}

// ClientOption represents a client configuration option
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithToken sets the admin bearer token
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new mapping validation service client
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		version: "v1",
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Field is one side of a mapping
type Field struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Nullable    bool        `json:"nullable"`
	Constraints []string    `json:"constraints,omitempty"`
	Origin      string      `json:"origin,omitempty"`
	Schema      string      `json:"schema,omitempty"`
	Table       string      `json:"table,omitempty"`
	Path        string      `json:"path,omitempty"`
	Sample      interface{} `json:"sample,omitempty"`
}

// Mapping pairs an API field with a database column
type Mapping struct {
	ID          string    `json:"id,omitempty"`
	ProfileID   string    `json:"profile_id,omitempty"`
	SourceField Field     `json:"source_field"`
	TargetField Field     `json:"target_field"`
	IsActive    bool      `json:"is_active,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// TypeCompatibility is the verdict for one type pairing
type TypeCompatibility struct {
	Level       string   `json:"level"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// RuleDetails breaks a validation result down by rule family
type RuleDetails struct {
	TypeCompatibility       bool `json:"typeCompatibility"`
	ConstraintValidation    bool `json:"constraintValidation"`
	FormatValidation        bool `json:"formatValidation"`
	SizeValidation          bool `json:"sizeValidation"`
	RequiredFieldValidation bool `json:"requiredFieldValidation"`
}

// ValidationResult is the outcome of evaluating one mapping
type ValidationResult struct {
	IsValid       bool        `json:"isValid"`
	Errors        []string    `json:"errors"`
	Warnings      []string    `json:"warnings"`
	Suggestions   []string    `json:"suggestions"`
	Compatibility string      `json:"compatibility"`
	Score         int         `json:"score"`
	Details       RuleDetails `json:"details"`
}

// ValidationSummary rolls a mapping set up into one verdict
type ValidationSummary struct {
	Status          string   `json:"status"`
	TotalMappings   int      `json:"totalMappings"`
	ValidMappings   int      `json:"validMappings"`
	WarningMappings int      `json:"warningMappings"`
	ErrorMappings   int      `json:"errorMappings"`
	OverallScore    int      `json:"overallScore"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	Suggestions     []string `json:"suggestions"`
	CriticalIssues  []string `json:"criticalIssues"`
	FixableIssues   []string `json:"fixableIssues"`
}

// ConnectionProfile describes a target database
type ConnectionProfile struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Driver       string    `json:"driver"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	DatabaseName string    `json:"database_name"`
	Username     string    `json:"username,omitempty"`
	Secret       string    `json:"secret,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// SchemaColumn is one introspected column for a schema upload
type SchemaColumn struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Nullable    bool     `json:"nullable"`
	Constraints []string `json:"constraints"`
	Schema      string   `json:"schema,omitempty"`
	Table       string   `json:"table,omitempty"`
}

// Error represents an API error response
type Error struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// Validation Methods

// CheckCompatibility classifies one (source type, target type) pairing
func (c *Client) CheckCompatibility(ctx context.Context, sourceType, targetType string) (*TypeCompatibility, error) {
	body := map[string]string{"source_type": sourceType, "target_type": targetType}
	var result TypeCompatibility
	err := c.makeRequest(ctx, "POST", "/validation/compatibility", body, &result)
	return &result, err
}

// ValidateMapping evaluates one draft mapping without persisting it
func (c *Client) ValidateMapping(ctx context.Context, source, target Field) (*ValidationResult, error) {
	body := map[string]Field{"source_field": source, "target_field": target}
	var result ValidationResult
	err := c.makeRequest(ctx, "POST", "/validation/mapping", body, &result)
	return &result, err
}

// SummarizeMappings summarizes a draft mapping set
func (c *Client) SummarizeMappings(ctx context.Context, mappings []Mapping) (*ValidationSummary, error) {
	body := map[string][]Mapping{"mappings": mappings}
	var result ValidationSummary
	err := c.makeRequest(ctx, "POST", "/validation/summary", body, &result)
	return &result, err
}

// ExtractFields derives fields from a sample API payload
func (c *Client) ExtractFields(ctx context.Context, payload map[string]interface{}) ([]Field, error) {
	body := map[string]interface{}{"payload": payload}
	var result struct {
		Fields []Field `json:"fields"`
	}
	err := c.makeRequest(ctx, "POST", "/extraction/fields", body, &result)
	return result.Fields, err
}

// Profile Methods

// CreateProfile creates a connection profile
func (c *Client) CreateProfile(ctx context.Context, profile *ConnectionProfile) (*ConnectionProfile, error) {
	var result ConnectionProfile
	err := c.makeRequest(ctx, "POST", "/profiles", profile, &result)
	return &result, err
}

// GetProfiles lists all connection profiles
func (c *Client) GetProfiles(ctx context.Context) ([]*ConnectionProfile, error) {
	var result struct {
		Profiles []*ConnectionProfile `json:"profiles"`
	}
	err := c.makeRequest(ctx, "GET", "/profiles", nil, &result)
	return result.Profiles, err
}

// GetProfile retrieves one connection profile
func (c *Client) GetProfile(ctx context.Context, id string) (*ConnectionProfile, error) {
	var result ConnectionProfile
	err := c.makeRequest(ctx, "GET", "/profiles/"+id, nil, &result)
	return &result, err
}

// UpdateProfile updates a connection profile
func (c *Client) UpdateProfile(ctx context.Context, id string, profile *ConnectionProfile) (*ConnectionProfile, error) {
	var result ConnectionProfile
	err := c.makeRequest(ctx, "PUT", "/profiles/"+id, profile, &result)
	return &result, err
}

// DeleteProfile deletes a connection profile
func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	return c.makeRequest(ctx, "DELETE", "/profiles/"+id, nil, nil)
}

// Schema Methods

// UploadSchema replaces the profile's schema snapshot
func (c *Client) UploadSchema(ctx context.Context, profileID string, columns []SchemaColumn) error {
	body := map[string][]SchemaColumn{"columns": columns}
	return c.makeRequest(ctx, "PUT", "/profiles/"+profileID+"/schema", body, nil)
}

// GetSchema retrieves the profile's schema snapshot fields
func (c *Client) GetSchema(ctx context.Context, profileID string) ([]Field, error) {
	var result struct {
		Fields []Field `json:"fields"`
	}
	err := c.makeRequest(ctx, "GET", "/profiles/"+profileID+"/schema", nil, &result)
	return result.Fields, err
}

// Mapping Methods

// CreateMapping persists a new mapping for a profile
func (c *Client) CreateMapping(ctx context.Context, profileID string, source, target Field) (*Mapping, error) {
	body := map[string]Field{"source_field": source, "target_field": target}
	var result Mapping
	err := c.makeRequest(ctx, "POST", "/profiles/"+profileID+"/mappings", body, &result)
	return &result, err
}

// GetMappings lists a profile's active mappings
func (c *Client) GetMappings(ctx context.Context, profileID string) ([]*Mapping, error) {
	var result struct {
		Mappings []*Mapping `json:"mappings"`
	}
	err := c.makeRequest(ctx, "GET", "/profiles/"+profileID+"/mappings", nil, &result)
	return result.Mappings, err
}

// UpdateMapping updates a persisted mapping
func (c *Client) UpdateMapping(ctx context.Context, mappingID string, source, target Field) (*Mapping, error) {
	body := map[string]Field{"source_field": source, "target_field": target}
	var result Mapping
	err := c.makeRequest(ctx, "PUT", "/mappings/"+mappingID, body, &result)
	return &result, err
}

// DeleteMapping deletes a persisted mapping
func (c *Client) DeleteMapping(ctx context.Context, mappingID string) error {
	return c.makeRequest(ctx, "DELETE", "/mappings/"+mappingID, nil, nil)
}

// ValidateProfile returns the profile's validation summary
func (c *Client) ValidateProfile(ctx context.Context, profileID string) (*ValidationSummary, error) {
	var result ValidationSummary
	err := c.makeRequest(ctx, "GET", "/profiles/"+profileID+"/validation", nil, &result)
	return &result, err
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := fmt.Sprintf("%s/api/%s%s", c.baseURL, c.version, path)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr Error
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		apiErr.Status = resp.StatusCode
		return &apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
