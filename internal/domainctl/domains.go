package domainctl

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/edvin/edgedomains/internal/model"
)

type domainBody struct {
	DomainName string `json:"domainName"`
}

// ListDomains returns the registered domains in order.
func (c *Client) ListDomains() ([]string, error) {
	resp, err := c.Get("/domains")
	if err != nil {
		return nil, err
	}
	var body struct {
		Domains []string `json:"domains"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("parse domains: %w", err)
	}
	return body.Domains, nil
}

// AddDomain registers a domain and returns the records to publish for it.
func (c *Client) AddDomain(name string) ([]model.ResourceRecord, error) {
	resp, err := c.Post("/domains", domainBody{DomainName: name})
	if err != nil {
		return nil, err
	}
	var body map[string][]model.ResourceRecord
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	for _, records := range body {
		return records, nil
	}
	return nil, nil
}

// RemoveDomain deregisters a domain and returns the confirmation.
func (c *Client) RemoveDomain(name string) (string, error) {
	resp, err := c.Delete("/domains", domainBody{DomainName: name})
	if err != nil {
		return "", err
	}
	return message(resp)
}

// CName returns the validation record of a domain.
func (c *Client) CName(name string) (*model.ResourceRecord, error) {
	resp, err := c.Get("/domains/" + url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	var body map[string]model.ResourceRecord
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	for _, record := range body {
		return &record, nil
	}
	return nil, fmt.Errorf("empty response for %s", name)
}

// Reconcile updates the distribution to the current domain set.
func (c *Client) Reconcile() (string, error) {
	resp, err := c.Patch("/distribution", nil)
	if err != nil {
		return "", err
	}
	return message(resp)
}

func message(resp *Response) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("parse message: %w", err)
	}
	return body.Message, nil
}

// FormatRecord renders a record as a zone-file line.
func FormatRecord(r model.ResourceRecord) string {
	name := r.Name
	if name == "" {
		name = "@"
	}
	return fmt.Sprintf("%s\t%s\t%s", name, r.Type, r.Value)
}
