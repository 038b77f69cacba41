package toxicity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/safespeak/safespeak/shared"
)

const (
	analyzeEndpoint = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"

	// Messages scoring above this are flagged as toxic.
	toxicThreshold = 0.7
)

type Result struct {
	Toxic bool    `json:"toxic"`
	Score float64 `json:"score"`
}

// Client proxies message text to the Perspective API for a toxicity score.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(config shared.PerspectiveConfig) *Client {
	return &Client{
		apiKey:     config.ApiKey,
		endpoint:   analyzeEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Check(message string) (*Result, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"comment":             map[string]string{"text": message},
		"requestedAttributes": map[string]interface{}{"TOXICITY": map[string]interface{}{}},
	})
	if err != nil {
		return nil, fmt.Errorf("toxicity.Check: %v", err)
	}

	requestURL := fmt.Sprintf("%v?key=%v", c.endpoint, url.QueryEscape(c.apiKey))
	resp, err := c.httpClient.Post(requestURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("toxicity.Check: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("toxicity.Check: analyzer returned status %v", resp.StatusCode)
	}

	var analyzed struct {
		AttributeScores struct {
			Toxicity struct {
				SummaryScore struct {
					Value float64 `json:"value"`
				} `json:"summaryScore"`
			} `json:"TOXICITY"`
		} `json:"attributeScores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		return nil, fmt.Errorf("toxicity.Check: %v", err)
	}

	score := analyzed.AttributeScores.Toxicity.SummaryScore.Value
	return &Result{Toxic: score > toxicThreshold, Score: score}, nil
}
